package document

import "time"

// Document is a verification file uploaded by a professional. The stored
// path always starts with the owner's user id segment, which is what the
// delete authorization check relies on.
type Document struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;index" json:"user_id"`
	OriginalName string    `gorm:"column:original_name" json:"name"`
	FilePath     string    `gorm:"column:file_path" json:"path"`
	ContentType  string    `gorm:"column:content_type" json:"content_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Document) TableName() string { return "documents" }
