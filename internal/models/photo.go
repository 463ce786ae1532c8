package models

import "time"

// UploadedPhoto keeps the image bytes inline. Listing queries must omit the
// data column; Data is never serialized.
type UploadedPhoto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null;uniqueIndex:idx_photo_owner_file;index:idx_photo_owner" json:"first_name"`
	LastName    string    `gorm:"size:100;not null;uniqueIndex:idx_photo_owner_file;index:idx_photo_owner" json:"last_name"`
	PhoneNumber string    `gorm:"size:32;not null" json:"phone_number"`
	Filename    string    `gorm:"size:255;not null;uniqueIndex:idx_photo_owner_file" json:"filename"`
	ContentType string    `gorm:"size:100;not null;default:''" json:"content_type"`
	Size        int64     `gorm:"not null;default:0" json:"size"`
	Data        []byte    `json:"-"`
	UploadedAt  time.Time `gorm:"not null" json:"uploaded_at"`
}

const MaxPhotosPerUploader = 5
