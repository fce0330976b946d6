package messages

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
	"github.com/rohandesai/brandline-backend/pkg/pagination"
)

// Repository exposes contact message persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact message row.
func (r *Repository) Create(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// List returns one page of messages, newest first, with the total count.
func (r *Repository) List(ctx context.Context, params pagination.Params, unreadOnly bool) ([]models.ContactMessage, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if unreadOnly {
		qb = qb.Where("read_at IS NULL")
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContactMessage
	err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	return rows, total, err
}

// FindByID loads one message.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Update saves an existing message row.
func (r *Repository) Update(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Delete removes a message by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{}).Error
}
