package gorm

import (
	"errors"

	"gorm.io/gorm"

	"editoria/pkg/model"
	"editoria/pkg/server/store"
)

// Ensure ArticlesStore implements store.ArticlesStore
var _ store.ArticlesStore = (*ArticlesStore)(nil)

// ArticlesStore implements store.ArticlesStore using GORM
type ArticlesStore struct {
	db *gorm.DB
}

// NewArticlesStore creates a new ArticlesStore
func NewArticlesStore(db *gorm.DB) *ArticlesStore {
	return &ArticlesStore{db: db}
}

// AddArticle inserts an article row for the given author.
func (s *ArticlesStore) AddArticle(authorID int64, title string, content *string) error {
	return s.db.Create(&model.Article{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}).Error
}

// GetTitles returns every article authored by the given editor.
func (s *ArticlesStore) GetTitles(authorID int64) ([]store.Article, error) {
	var articles []model.Article
	tx := s.db.Where("author_id = ?", authorID).Find(&articles)
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := make([]store.Article, 0, len(articles))
	for _, a := range articles {
		result = append(result, store.Article{
			ID:       a.ID,
			AuthorID: a.AuthorID,
			Title:    a.Title,
			Content:  a.Content,
		})
	}
	return result, nil
}

// FindArticle looks up an article by primary key. A missing row is
// (nil, nil), not an error.
func (s *ArticlesStore) FindArticle(id int64) (*store.Article, error) {
	var article model.Article
	tx := s.db.Where("id = ?", id).First(&article)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.Article{
		ID:       article.ID,
		AuthorID: article.AuthorID,
		Title:    article.Title,
		Content:  article.Content,
	}, nil
}

// UpdateArticle replaces title and content of the matching row. Zero
// matched rows is still success.
func (s *ArticlesStore) UpdateArticle(id int64, title string, content *string) error {
	return s.db.Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error
}

// DeleteArticle removes the matching row. Zero matched rows is still
// success.
func (s *ArticlesStore) DeleteArticle(id int64) error {
	return s.db.Delete(&model.Article{}, id).Error
}
