package store

// Editor is an editor row as returned by the store layer.
type Editor struct {
	EditorID       int64
	EditorName     string
	EditorCallName string
	Password       string // bcrypt digest
}

// EditorsStore abstracts editor storage operations.
//
// Lookups distinguish "absent" from "failed": a missing row is (nil, nil),
// an error is only returned for connectivity loss, constraint violations or
// malformed queries.
type EditorsStore interface {
	// FindEditor looks up an editor by its unique name.
	FindEditor(name string) (*Editor, error)

	// AddEditor inserts an editor and re-reads it by name so the caller
	// gets the generated id. The two statements are not transactional.
	AddEditor(name, callName, passwordDigest string) (*Editor, error)

	// UpdatePassword replaces the stored digest for the named editor.
	// Matching zero rows is not an error.
	UpdatePassword(name, passwordDigest string) error
}
