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

// Posts is the storage surface for blog posts and their comments
type Posts interface {
	List(ctx context.Context) ([]*Post, error)
	ListByPoster(ctx context.Context, posterID uuid.UUID) ([]*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	Create(ctx context.Context, post *Post) (*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) (*Post, error)

	AddComment(ctx context.Context, comment *Comment) (*Comment, error)
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) (*Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error
}

// PostsRepository implements Posts using Bun
type PostsRepository struct {
	db *bun.DB
}

// NewPostsRepository creates a new repository
func NewPostsRepository(db *bun.DB) *PostsRepository {
	return &PostsRepository{db: db}
}

var _ Posts = (*PostsRepository)(nil)

func withComments(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Comments", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("cmt.created_at ASC")
	})
}

// List returns every post with its comments
func (r *PostsRepository) List(ctx context.Context) ([]*Post, error) {
	var models []*Post
	err := withComments(r.db.NewSelect().Model(&models)).
		Order("post.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []*Post{}
	}
	return models, nil
}

// ListByPoster returns the posts owned by the given user
func (r *PostsRepository) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]*Post, error) {
	var models []*Post
	err := withComments(r.db.NewSelect().Model(&models)).
		Where("post.poster_id = ?", posterID).
		Order("post.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []*Post{}
	}
	return models, nil
}

// GetByID returns a single post with its comments
func (r *PostsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	post := &Post{}
	err := withComments(r.db.NewSelect().Model(post)).
		Where("post.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}
	if post.Comments == nil {
		post.Comments = []*Comment{}
	}
	return post, nil
}

// Create persists a new post
func (r *PostsRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	_, err := r.db.NewInsert().Model(post).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, post.ID)
}

// Update persists title and content changes to an existing post
func (r *PostsRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	post.UpdatedAt = timePtr(time.Now())

	res, err := r.db.NewUpdate().
		Model(post).
		Column("title", "content", "updated_at").
		Where("id = ?", post.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": post.ID.String()})
	}

	return r.GetByID(ctx, post.ID)
}

// Delete removes a post and its comments, returning the removed record
func (r *PostsRepository) Delete(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Comment)(nil)).
			Where("post_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewDelete().
			Model((*Post)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// AddComment appends a comment as a single INSERT so concurrent
// commenters never overwrite each other
func (r *PostsRepository) AddComment(ctx context.Context, comment *Comment) (*Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	_, err := r.db.NewInsert().Model(comment).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComment fetches a comment scoped to its post
func (r *PostsRepository) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*Comment, error) {
	comment := &Comment{}
	err := r.db.NewSelect().
		Model(comment).
		Where("cmt.id = ? AND cmt.post_id = ?", commentID, postID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"post_id":    postID.String(),
					"comment_id": commentID.String(),
				})
		}
		return nil, err
	}
	return comment, nil
}

// UpdateComment persists an edited comment body
func (r *PostsRepository) UpdateComment(ctx context.Context, comment *Comment) (*Comment, error) {
	comment.UpdatedAt = timePtr(time.Now())

	res, err := r.db.NewUpdate().
		Model(comment).
		Column("comment", "updated_at").
		Where("id = ? AND post_id = ?", comment.ID, comment.PostID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"comment_id": comment.ID.String()})
	}

	return comment, nil
}

// DeleteComment removes a comment scoped to its post
func (r *PostsRepository) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Comment)(nil)).
		Where("id = ? AND post_id = ?", commentID, postID).
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"post_id":    postID.String(),
				"comment_id": commentID.String(),
			})
	}

	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
