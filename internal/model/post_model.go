package model

type PostModel struct {
	ID       int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string  `gorm:"type:text" json:"title"`
	Content  string  `gorm:"type:text" json:"content"`
	Filename *string `gorm:"type:text" json:"filename"`
	Filepath *string `gorm:"type:text" json:"filepath"`
}

func (PostModel) TableName() string {
	return "board"
}
