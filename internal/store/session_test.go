package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"serenityspa/internal/domain"
	"serenityspa/internal/storage"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockDirectory) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func demoUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           3,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Name:         "Nguyễn Văn A",
		Role:         domain.RoleCustomer,
	}
}

func newSessionStore(dir UserDirectory) (*SessionStore, *storage.MemKV) {
	kv := storage.NewMemKV()
	return NewSessionStore(kv, dir, time.Millisecond, zerolog.Nop()), kv
}

func TestSignInSuccess(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "user@example.com").Return(demoUser(t), nil)

	s, _ := newSessionStore(dir)
	ctx := context.Background()

	sess, err := s.SignIn(ctx, "client-1", "user@example.com", "password").Await()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user@example.com", sess.User.Email)
	assert.Empty(t, sess.User.PasswordHash)

	loaded, err := s.Load(ctx, "client-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.User.ID, loaded.User.ID)
	assert.True(t, s.IsAuthenticated(ctx, "client-1"))
}

func TestSignInWrongPassword(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "user@example.com").Return(demoUser(t), nil)

	s, _ := newSessionStore(dir)
	ctx := context.Background()

	sess, err := s.SignIn(ctx, "client-1", "user@example.com", "wrong").Await()
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sess)
	assert.False(t, s.IsAuthenticated(ctx, "client-1"))
}

func TestSignInUnknownEmail(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	s, _ := newSessionStore(dir)

	_, err := s.SignIn(context.Background(), "client-1", "ghost@example.com", "password").Await()
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInDirectoryOutageIsNotACredentialMismatch(t *testing.T) {
	boom := errors.New("connection refused")
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, boom)

	s, _ := newSessionStore(dir)

	_, err := s.SignIn(context.Background(), "client-1", "user@example.com", "password").Await()
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "user@example.com").Return(demoUser(t), nil)

	s, _ := newSessionStore(dir)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "client-1", "user@example.com", "password").Await()
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx, "client-1"))
	assert.False(t, s.IsAuthenticated(ctx, "client-1"))

	// Signing out again stays a no-op.
	assert.NoError(t, s.SignOut(ctx, "client-1"))
}

func TestLoadDiscardsCorruptRecord(t *testing.T) {
	dir := new(mockDirectory)
	s, kv := newSessionStore(dir)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "session:client-1", []byte("{not json")))

	sess, err := s.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	// The broken slot is gone; the next load starts clean.
	_, ok, err := kv.Get(ctx, "session:client-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetByEmail", mock.Anything, "user@example.com").Return(demoUser(t), nil)

	s, _ := newSessionStore(dir)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "client-1", "user@example.com", "password").Await()
	require.NoError(t, err)

	sess, err := s.UpdateProfile(ctx, "client-1", ProfilePatch{Phone: "0901234567"})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "0901234567", sess.User.Phone)
	assert.Equal(t, "Nguyễn Văn A", sess.User.Name)

	// Untouched fields survive a second partial patch.
	sess, err = s.UpdateProfile(ctx, "client-1", ProfilePatch{Address: "Quận 1, TP.HCM"})
	require.NoError(t, err)
	assert.Equal(t, "0901234567", sess.User.Phone)
	assert.Equal(t, "Quận 1, TP.HCM", sess.User.Address)
}

func TestUpdateProfileWithoutSession(t *testing.T) {
	dir := new(mockDirectory)
	s, _ := newSessionStore(dir)

	sess, err := s.UpdateProfile(context.Background(), "client-1", ProfilePatch{Name: "Nobody"})
	require.NoError(t, err)
	assert.Nil(t, sess)
}
