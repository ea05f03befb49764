package models

import "time"

// Media is an uploaded attachment linked to a report. Filename is the
// original client name; StoredName is the unique name on disk.
type Media struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Filename   string    `gorm:"size:200;not null" json:"filename"`
	StoredName string    `gorm:"size:200;not null" json:"stored_name"`
	FilePath   string    `gorm:"size:300;not null" json:"file_path"`
	UploadDate time.Time `json:"upload_date"`

	UserID     uint `gorm:"not null" json:"user_id"`
	ComplainID uint `gorm:"not null" json:"complain_id"`
}
