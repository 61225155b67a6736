package model

// Editor is a registered author account. Password always holds a bcrypt
// digest; plaintext never reaches the database.
type Editor struct {
	EditorID       int64  `gorm:"column:editor_id;primaryKey"`
	EditorName     string `gorm:"column:editor_name;unique"`
	EditorCallName string `gorm:"column:editor_call_name"`
	Password       string `gorm:"column:password"`
}

func (e Editor) TableName() string {
	return "editors"
}
