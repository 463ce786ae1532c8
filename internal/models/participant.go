package models

type Participant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FirstName   string `gorm:"size:100;not null;uniqueIndex:idx_participant_name" json:"first_name"`
	LastName    string `gorm:"size:100;not null;uniqueIndex:idx_participant_name" json:"last_name"`
	PhoneNumber string `gorm:"size:32;not null;uniqueIndex" json:"phone_number"`
	Attending   bool   `gorm:"not null;default:false" json:"attending"`
}
