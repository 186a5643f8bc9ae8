package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Quorum/config"
	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/lshigami/Quorum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}}
	svc, err := NewAuthService(repository.NewUserRepository(db), cfg)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for _, secret := range []string{"", "   "} {
		svc, err := NewAuthService(repository.NewUserRepository(db), &config.Config{Auth: config.Auth{JWTSecret: secret}})
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
		assert.Nil(t, svc)
	}
}

func TestAuth_ParseTokenRejectsEmptyKeyTokens(t *testing.T) {
	svc := newAuthService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "42", Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(""))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	requireKind(t, err, apperror.KindUnauthorized)
}

func TestAuth_RegisterLoginParse(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Register(dto.RegisterRequest{Username: "alice", Password: "another one"})
	requireKind(t, err, apperror.KindConflict)

	auth, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), auth.ExpiresAt, time.Minute)

	id, err := svc.ParseToken(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

// racyUserRepository hides existing users from the first lookup, as if a
// concurrent registration committed right after it.
type racyUserRepository struct {
	repository.UserRepository
	lookups int
}

func (r *racyUserRepository) FindByUsername(username string) (*model.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.UserRepository.FindByUsername(username)
}

func TestAuth_RegisterRaceIsConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "alice")
	cfg := &config.Config{Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}}
	svc, err := NewAuthService(&racyUserRepository{UserRepository: repository.NewUserRepository(db)}, cfg)
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"})
	requireKind(t, err, apperror.KindConflict)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.User{}))
}

func TestAuth_LoginFailures(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Username: "alice", Password: "wrong"})
	requireKind(t, err, apperror.KindUnauthorized)
	_, err = svc.Login(dto.LoginRequest{Username: "bob", Password: "correct horse"})
	requireKind(t, err, apperror.KindUnauthorized)
}

func TestAuth_ParseTokenRejectsForgedAndExpired(t *testing.T) {
	svc := newAuthService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1", Issuer: tokenIssuer,
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	requireKind(t, err, apperror.KindUnauthorized)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1", Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	requireKind(t, err, apperror.KindUnauthorized)

	_, err = svc.ParseToken("garbage")
	requireKind(t, err, apperror.KindUnauthorized)
}
