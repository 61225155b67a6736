package model

// Article is a titled content record owned by exactly one editor.
// Content is nullable in the schema, hence the pointer.
type Article struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	AuthorID int64   `gorm:"column:author_id"`
	Title    string  `gorm:"column:title"`
	Content  *string `gorm:"column:content"`
}

func (a Article) TableName() string {
	return "articles"
}
