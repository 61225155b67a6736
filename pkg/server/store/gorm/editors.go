package gorm

import (
	"errors"

	"gorm.io/gorm"

	"editoria/pkg/model"
	"editoria/pkg/server/store"
)

// Ensure EditorsStore implements store.EditorsStore
var _ store.EditorsStore = (*EditorsStore)(nil)

// EditorsStore implements store.EditorsStore using GORM
type EditorsStore struct {
	db *gorm.DB
}

// NewEditorsStore creates a new EditorsStore
func NewEditorsStore(db *gorm.DB) *EditorsStore {
	return &EditorsStore{db: db}
}

// FindEditor looks up an editor by its unique name. A missing row is
// (nil, nil), not an error.
func (s *EditorsStore) FindEditor(name string) (*store.Editor, error) {
	var editor model.Editor
	tx := s.db.Where("editor_name = ?", name).First(&editor)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.Editor{
		EditorID:       editor.EditorID,
		EditorName:     editor.EditorName,
		EditorCallName: editor.EditorCallName,
		Password:       editor.Password,
	}, nil
}

// AddEditor inserts an editor row and re-reads it by name to pick up the
// generated id. The insert and the read-back are two independent
// statements, not a transaction.
func (s *EditorsStore) AddEditor(name, callName, passwordDigest string) (*store.Editor, error) {
	tx := s.db.Create(&model.Editor{
		EditorName:     name,
		EditorCallName: callName,
		Password:       passwordDigest,
	})
	if tx.Error != nil {
		return nil, tx.Error
	}

	return s.FindEditor(name)
}

// UpdatePassword replaces the digest stored for the named editor. Zero
// matched rows is still success.
func (s *EditorsStore) UpdatePassword(name, passwordDigest string) error {
	return s.db.Model(&model.Editor{}).
		Where("editor_name = ?", name).
		Update("password", passwordDigest).Error
}
