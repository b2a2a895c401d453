package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blog "github.com/ronnmabunga/blogging-website-app-api-demo"
)

func trackedUser(t *testing.T, password string) *blog.User {
	t.Helper()

	hash, err := blog.HashPassword(password)
	require.NoError(t, err)

	return &blog.User{
		ID:           uuid.New(),
		Username:     "ronnm",
		Email:        "ronn@example.com",
		PasswordHash: hash,
		Roles:        []string{"user"},
	}
}

func TestVerifyIdentitySuccess(t *testing.T) {
	user := trackedUser(t, "Correct1!")

	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, "ronn@example.com").Return(user, nil)
	store.On("TrackSuccessfulLogin", mock.Anything, user).Return(nil)

	provider := blog.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "ronn@example.com", "Correct1!")
	require.NoError(t, err)

	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Username, identity.Username)
	assert.Equal(t, user.Email, identity.Email)

	store.AssertExpectations(t)
}

func TestVerifyIdentityUnknownIdentifier(t *testing.T) {
	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, "nobody@example.com").
		Return(nil, repository.NewRecordNotFound())

	provider := blog.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "nobody@example.com", "whatever")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, blog.ErrMismatchedHashAndPassword)
}

func TestVerifyIdentityWrongPassword(t *testing.T) {
	user := trackedUser(t, "Correct1!")

	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, "ronn@example.com").Return(user, nil)
	store.On("TrackAttemptedLogin", mock.Anything, user).Return(nil)

	provider := blog.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "ronn@example.com", "Wrong1!!!")
	assert.Nil(t, identity)

	// indistinguishable from an unknown identifier
	assert.ErrorIs(t, err, blog.ErrMismatchedHashAndPassword)

	store.AssertExpectations(t)
}

func TestVerifyIdentityTooManyAttempts(t *testing.T) {
	user := trackedUser(t, "Correct1!")
	now := time.Now()
	user.LoginAttemptAt = &now
	user.LoginAttempts = blog.MaxLoginAttempts + 1

	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, "ronn@example.com").Return(user, nil)

	provider := blog.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "ronn@example.com", "Correct1!")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, blog.ErrTooManyLoginAttempts)
}

func TestVerifyIdentityCooldownExpired(t *testing.T) {
	user := trackedUser(t, "Correct1!")
	past := time.Now().Add(-25 * time.Hour)
	user.LoginAttemptAt = &past
	user.LoginAttempts = blog.MaxLoginAttempts + 1

	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, "ronn@example.com").Return(user, nil)
	store.On("TrackSuccessfulLogin", mock.Anything, user).Return(nil)

	provider := blog.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(context.Background(), "ronn@example.com", "Correct1!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
}

func TestFindIdentityBySubject(t *testing.T) {
	user := trackedUser(t, "Correct1!")

	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, user.ID.String()).Return(user, nil)

	provider := blog.NewUserProvider(store)

	identity, err := provider.FindIdentityBySubject(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
}

func TestFindIdentityBySubjectNotFound(t *testing.T) {
	store := &MockUserTracker{}
	store.On("GetByIdentifier", mock.Anything, mock.Anything).
		Return(nil, repository.NewRecordNotFound())

	provider := blog.NewUserProvider(store)

	identity, err := provider.FindIdentityBySubject(context.Background(), uuid.NewString())
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, blog.ErrIdentityNotFound)
}

func TestIsOutsideThresholdPeriod(t *testing.T) {
	outside, err := blog.IsOutsideThresholdPeriod(time.Now().Add(-2*time.Hour), "1h")
	require.NoError(t, err)
	assert.True(t, outside)

	outside, err = blog.IsOutsideThresholdPeriod(time.Now(), "1h")
	require.NoError(t, err)
	assert.False(t, outside)

	_, err = blog.IsOutsideThresholdPeriod(time.Now(), "not-a-duration")
	assert.Error(t, err)
}
