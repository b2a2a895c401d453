package blog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContactMessages is the storage surface for contact form messages
type ContactMessages interface {
	List(ctx context.Context) ([]*ContactMessage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	Create(ctx context.Context, message *ContactMessage) (*ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
}

// ContactMessagesRepository implements ContactMessages using Bun
type ContactMessagesRepository struct {
	db *bun.DB
}

// NewContactMessagesRepository creates a new repository
func NewContactMessagesRepository(db *bun.DB) *ContactMessagesRepository {
	return &ContactMessagesRepository{db: db}
}

var _ ContactMessages = (*ContactMessagesRepository)(nil)

// List returns every contact message, newest first
func (r *ContactMessagesRepository) List(ctx context.Context) ([]*ContactMessage, error) {
	var models []*ContactMessage
	err := r.db.NewSelect().
		Model(&models).
		Order("msg.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []*ContactMessage{}
	}
	return models, nil
}

// GetByID returns a single contact message
func (r *ContactMessagesRepository) GetByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error) {
	message := &ContactMessage{}
	err := r.db.NewSelect().
		Model(message).
		Where("msg.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}
	return message, nil
}

// Create persists a new contact message
func (r *ContactMessagesRepository) Create(ctx context.Context, message *ContactMessage) (*ContactMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	_, err := r.db.NewInsert().Model(message).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// MarkRead flags a message as read, the operation is idempotent
func (r *ContactMessagesRepository) MarkRead(ctx context.Context, id uuid.UUID) (*ContactMessage, error) {
	now := time.Now()
	res, err := r.db.NewUpdate().
		Model((*ContactMessage)(nil)).
		Set("is_read = ?", true).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return r.GetByID(ctx, id)
}
