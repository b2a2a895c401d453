package blog_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blog "github.com/ronnmabunga/blogging-website-app-api-demo"
)

// MockPosts implements blog.Posts
type MockPosts struct {
	mock.Mock
}

func (m *MockPosts) List(ctx context.Context) ([]*blog.Post, error) {
	args := m.Called(ctx)
	var posts []*blog.Post
	if v := args.Get(0); v != nil {
		posts = v.([]*blog.Post)
	}
	return posts, args.Error(1)
}

func (m *MockPosts) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]*blog.Post, error) {
	args := m.Called(ctx, posterID)
	var posts []*blog.Post
	if v := args.Get(0); v != nil {
		posts = v.([]*blog.Post)
	}
	return posts, args.Error(1)
}

func (m *MockPosts) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	args := m.Called(ctx, id)
	var post *blog.Post
	if v := args.Get(0); v != nil {
		post = v.(*blog.Post)
	}
	return post, args.Error(1)
}

func (m *MockPosts) Create(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	args := m.Called(ctx, post)
	var record *blog.Post
	if v := args.Get(0); v != nil {
		record = v.(*blog.Post)
	}
	return record, args.Error(1)
}

func (m *MockPosts) Update(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	args := m.Called(ctx, post)
	var record *blog.Post
	if v := args.Get(0); v != nil {
		record = v.(*blog.Post)
	}
	return record, args.Error(1)
}

func (m *MockPosts) Delete(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	args := m.Called(ctx, id)
	var record *blog.Post
	if v := args.Get(0); v != nil {
		record = v.(*blog.Post)
	}
	return record, args.Error(1)
}

func (m *MockPosts) AddComment(ctx context.Context, comment *blog.Comment) (*blog.Comment, error) {
	args := m.Called(ctx, comment)
	var record *blog.Comment
	if v := args.Get(0); v != nil {
		record = v.(*blog.Comment)
	}
	return record, args.Error(1)
}

func (m *MockPosts) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*blog.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	var record *blog.Comment
	if v := args.Get(0); v != nil {
		record = v.(*blog.Comment)
	}
	return record, args.Error(1)
}

func (m *MockPosts) UpdateComment(ctx context.Context, comment *blog.Comment) (*blog.Comment, error) {
	args := m.Called(ctx, comment)
	var record *blog.Comment
	if v := args.Get(0); v != nil {
		record = v.(*blog.Comment)
	}
	return record, args.Error(1)
}

func (m *MockPosts) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	args := m.Called(ctx, postID, commentID)
	return args.Error(0)
}

// MockContactMessages implements blog.ContactMessages
type MockContactMessages struct {
	mock.Mock
}

func (m *MockContactMessages) List(ctx context.Context) ([]*blog.ContactMessage, error) {
	args := m.Called(ctx)
	var records []*blog.ContactMessage
	if v := args.Get(0); v != nil {
		records = v.([]*blog.ContactMessage)
	}
	return records, args.Error(1)
}

func (m *MockContactMessages) GetByID(ctx context.Context, id uuid.UUID) (*blog.ContactMessage, error) {
	args := m.Called(ctx, id)
	var record *blog.ContactMessage
	if v := args.Get(0); v != nil {
		record = v.(*blog.ContactMessage)
	}
	return record, args.Error(1)
}

func (m *MockContactMessages) Create(ctx context.Context, message *blog.ContactMessage) (*blog.ContactMessage, error) {
	args := m.Called(ctx, message)
	var record *blog.ContactMessage
	if v := args.Get(0); v != nil {
		record = v.(*blog.ContactMessage)
	}
	return record, args.Error(1)
}

func (m *MockContactMessages) MarkRead(ctx context.Context, id uuid.UUID) (*blog.ContactMessage, error) {
	args := m.Called(ctx, id)
	var record *blog.ContactMessage
	if v := args.Get(0); v != nil {
		record = v.(*blog.ContactMessage)
	}
	return record, args.Error(1)
}

// MockUserStore implements blog.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*blog.User, error) {
	args := m.Called(ctx, id)
	var record *blog.User
	if v := args.Get(0); v != nil {
		record = v.(*blog.User)
	}
	return record, args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, record *blog.User, criteria ...repository.UpdateCriteria) (*blog.User, error) {
	args := m.Called(ctx, record)
	var updated *blog.User
	if v := args.Get(0); v != nil {
		updated = v.(*blog.User)
	}
	return updated, args.Error(1)
}

// MockRegistrar implements blog.UserRegistrar
type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Execute(ctx context.Context, msg blog.RegisterUserMessage) (*blog.User, error) {
	args := m.Called(ctx, msg)
	var record *blog.User
	if v := args.Get(0); v != nil {
		record = v.(*blog.User)
	}
	return record, args.Error(1)
}

// MockAuthenticator implements blog.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

// MockUserTracker implements blog.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByIdentifier(ctx context.Context, identifier string) (*blog.User, error) {
	args := m.Called(ctx, identifier)
	var record *blog.User
	if v := args.Get(0); v != nil {
		record = v.(*blog.User)
	}
	return record, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *blog.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *blog.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()

	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &body))

	return body
}
