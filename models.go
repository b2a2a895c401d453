package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	// RoleUser is the default role granted on registration
	RoleUser = "user"
	// RoleAdmin grants administrative access
	RoleAdmin = "admin"
	// RoleModerator grants content moderation access
	RoleModerator = "moderator"
)

// User is the user model
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	IsAdmin        bool       `bun:"is_admin" json:"isAdmin"`
	Roles          []string   `bun:"roles,type:jsonb" json:"roles,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"-"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"-"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Identity builds the ephemeral request identity for this user
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		Roles:    u.Roles,
	}
}

// Post is the blog post model, exposed as "blogs" on the wire
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:post"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PosterID      uuid.UUID  `bun:"poster_id,notnull,type:uuid" json:"posterId"`
	PosterEmail   string     `bun:"poster_email,notnull" json:"posterEmail"`
	Title         string     `bun:"title,notnull" json:"title"`
	Content       string     `bun:"content" json:"content,omitempty"`
	Comments      []*Comment `bun:"rel:has-many,join:id=post_id" json:"comments"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Comment lives in its own table so that adding one is a single INSERT
// and concurrent commenters cannot overwrite each other.
type Comment struct {
	bun.BaseModel  `bun:"table:comments,alias:cmt"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PostID         uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"-"`
	CommenterID    *uuid.UUID `bun:"commenter_id,type:uuid" json:"commenterId,omitempty"`
	CommenterEmail string     `bun:"commenter_email" json:"commenterEmail,omitempty"`
	Comment        string     `bun:"comment,notnull" json:"comment"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	bun.BaseModel `bun:"table:messages,alias:msg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Email         string     `bun:"email,notnull" json:"email"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	Message       string     `bun:"message,notnull" json:"message"`
	IsRead        bool       `bun:"is_read" json:"isRead"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}
