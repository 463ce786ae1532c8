package models

import "time"

type QuizParticipant struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	FirstName        string          `gorm:"size:100;not null" json:"first_name"`
	LastName         string          `gorm:"size:100;not null" json:"last_name"`
	PhoneNumber      string          `gorm:"size:32;not null" json:"phone_number"`
	SubmittedAnswers map[uint]string `gorm:"serializer:json;type:text;not null" json:"submitted_answers"`
	TotalMarks       int             `gorm:"not null;default:0;index" json:"total_marks"`
	SubmittedAt      time.Time       `gorm:"not null" json:"submitted_at"`
}
