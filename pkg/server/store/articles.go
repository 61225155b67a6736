package store

// Article is an article row as returned by the store layer.
type Article struct {
	ID       int64
	AuthorID int64
	Title    string
	Content  *string
}

// ArticlesStore abstracts article storage operations.
type ArticlesStore interface {
	// AddArticle inserts an article for the given author.
	AddArticle(authorID int64, title string, content *string) error

	// GetTitles returns all articles authored by the given editor, in
	// store default order.
	GetTitles(authorID int64) ([]Article, error)

	// FindArticle looks up an article by primary key. A missing row is
	// (nil, nil).
	FindArticle(id int64) (*Article, error)

	// UpdateArticle replaces title and content of the matching row.
	// Matching zero rows is not an error.
	UpdateArticle(id int64, title string, content *string) error

	// DeleteArticle removes the matching row. Matching zero rows is not
	// an error.
	DeleteArticle(id int64) error
}
