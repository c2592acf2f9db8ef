package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
	"github.com/pageza/recipebox/backend/internal/validation"
)

const tokenTTL = 24 * time.Hour

var (
	ErrRegisterFieldsRequired = errors.New("name, email, and password are required")
	ErrLoginFieldsRequired    = errors.New("email and password are required")
	ErrNameRequired           = errors.New("name cannot be empty")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrPasswordTooShort       = fmt.Errorf("password must be at least %d characters long", validation.MinPasswordLength)
	ErrEmailTaken             = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid token")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	logger    *zap.Logger
	hashCost  int
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
		tokenTTL:  tokenTTL,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// Register creates an account and returns it with a session token
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.Account, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrRegisterFieldsRequired
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, "", ErrNameRequired
	}
	if !validation.IsValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}
	if !validation.IsValidPassword(password) {
		return nil, "", ErrPasswordTooShort
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.GenerateToken(account)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("account registered", zap.String("user_id", account.ID.String()))
	return account, token, nil
}

// Login verifies the credentials and returns the account with a session token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrLoginFieldsRequired
	}
	email = strings.TrimSpace(email)
	if !validation.IsValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}

	var account model.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("login failed", zap.String("reason", "unknown email"))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed", zap.String("reason", "wrong password"), zap.String("user_id", account.ID.String()))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&account)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

func (s *AuthService) GenerateToken(account *model.Account) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: account.ID,
		Name:   account.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
