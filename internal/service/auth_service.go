package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingRegistration = errors.New("missing username, password or email")
	ErrMissingCredentials  = errors.New("missing username or password")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already taken")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidToken        = errors.New("invalid token")
)

var validate = validator.New()

// Clock returns the current time
type Clock func() time.Time

// AuthService handles registration, login and token verification
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtConfig config.JWTConfig
	now       Clock
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, jwtConfig config.JWTConfig, now Clock) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		now:       now,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NormalizeEmail validates the address format and returns its canonical form:
// surrounding whitespace trimmed and the domain lowercased.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}

	at := strings.LastIndex(email, "@")
	return email[:at] + "@" + strings.ToLower(email[at+1:]), nil
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, ErrMissingRegistration
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// lost a race with a concurrent registration
			if taken, _ := s.userRepo.ExistsByEmail(ctx, email); taken {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed token.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.GenerateToken(user.ID)
}

// GenerateToken signs a token whose subject is the user id
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.jwtConfig.ExpireMinutes) * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// ValidateToken verifies signature and expiry and returns the user id in the subject claim
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}

	return uint(id), nil
}
