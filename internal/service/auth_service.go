package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Quorum/config"
	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "quorum"

// AuthService registers owners and issues the bearer tokens that identify
// them on survey mutations.
type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	ParseToken(token string) (uint, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// ErrMissingJWTSecret is returned when no signing key is configured. Tokens
// signed with an empty HMAC key could be minted by anyone.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) (AuthService, error) {
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{userRepo: userRepo, secret: []byte(cfg.Auth.JWTSecret), ttl: ttl, now: time.Now}, nil
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.Validation("username is required", "username")
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, apperror.Conflict("username is already taken", username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := model.User{Username: username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(&user); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) || s.usernameTaken(username) {
			log.Warn().Err(err).Str("username", username).Msg("Register: Username taken concurrently")
			return nil, apperror.Conflict("username is already taken", username)
		}
		log.Error().Err(err).Str("username", username).Msg("Register: Failed to create user")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("User registered")
	return &dto.UserResponse{ID: user.ID, Username: user.Username}, nil
}

func (s *authService) usernameTaken(username string) bool {
	_, err := s.userRepo.FindByUsername(username)
	return err == nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	expiresAt := s.now().Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserResponse{ID: user.ID, Username: user.Username},
	}, nil
}

// ParseToken validates a bearer token and returns the owner id it carries.
func (s *authService) ParseToken(token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, apperror.Unauthorized("invalid or expired token")
	}
	if claims.Issuer != tokenIssuer {
		return 0, apperror.Unauthorized("invalid or expired token")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Unauthorized("invalid or expired token")
	}
	return uint(id), nil
}
