package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/pagination"
)

// MessageDTO is the contact message payload returned to the admin dashboard.
type MessageDTO struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateInput holds a validated contact form submission.
type CreateInput struct {
	Name    string
	Email   *string
	Phone   *string
	Subject *string
	Body    string
}

// ListInput selects one admin page of messages.
type ListInput struct {
	Pagination pagination.Params
	UnreadOnly bool
}

// Service exposes the contact message operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*MessageDTO, error)
	List(ctx context.Context, input ListInput) (*pagination.Result[MessageDTO], error)
	MarkRead(ctx context.Context, id uint) (*MessageDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a message service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("message repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*MessageDTO, error) {
	name := strings.TrimSpace(input.Name)
	body := strings.TrimSpace(input.Body)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	message := &models.ContactMessage{
		Name:    name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Body:    body,
	}
	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert contact message")
	}
	dto := newMessageDTO(created)
	return &dto, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*pagination.Result[MessageDTO], error) {
	params := input.Pagination.Normalize()
	rows, total, err := s.repo.List(ctx, params, input.UnreadOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list contact messages")
	}

	items := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		items = append(items, newMessageDTO(&rows[i]))
	}
	return &pagination.Result[MessageDTO]{
		Items:   items,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}, nil
}

// MarkRead stamps the message as read. Already-read messages keep their
// original timestamp.
func (s *service) MarkRead(ctx context.Context, id uint) (*MessageDTO, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Message not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find contact message")
	}

	if message.ReadAt == nil {
		now := s.now().UTC()
		message.ReadAt = &now
		if _, err := s.repo.Update(ctx, message); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark message read")
		}
	}

	dto := newMessageDTO(message)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Message not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find contact message")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete contact message")
	}
	return nil
}

func newMessageDTO(message *models.ContactMessage) MessageDTO {
	return MessageDTO{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Body:      message.Body,
		ReadAt:    message.ReadAt,
		CreatedAt: message.CreatedAt,
	}
}
