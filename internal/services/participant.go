package services

import (
	"context"
	"errors"

	"github.com/Ajayrajc1998/wedding/internal/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

type ParticipantInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Attending   bool
}

func (s *ParticipantService) Register(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	db := s.db.WithContext(ctx)

	var existing models.Participant
	err := db.Where("first_name = ? AND last_name = ?", input.FirstName, input.LastName).First(&existing).Error
	if err == nil {
		return nil, newError(ErrConflict, "participant with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := models.Participant{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Attending:   input.Attending,
	}
	// The unique indexes catch registrations racing past the check above.
	if err := db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "participant with this name or phone number already exists")
		}
		return nil, err
	}
	return &p, nil
}

func (s *ParticipantService) List(ctx context.Context) ([]models.Participant, error) {
	participants := []models.Participant{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *ParticipantService) GetByID(ctx context.Context, id uint) (*models.Participant, error) {
	var p models.Participant
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "participant not found")
		}
		return nil, err
	}
	return &p, nil
}

// Update replaces every mutable field; there is no partial patch.
func (s *ParticipantService) Update(ctx context.Context, id uint, input ParticipantInput) (*models.Participant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.PhoneNumber = input.PhoneNumber
	p.Attending = input.Attending
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "participant with this name or phone number already exists")
		}
		return nil, err
	}
	return p, nil
}

// Delete is idempotent: removing an absent participant reports false, not an
// error.
func (s *ParticipantService) Delete(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Participant{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
