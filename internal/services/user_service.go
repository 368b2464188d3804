package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Custom errors
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// bcrypt only hashes the first 72 bytes and refuses anything longer.
const maxPasswordBytes = 72

// Claims carried by every session token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type UserService struct {
	repo        repository.UserRepository
	sessions    repository.SessionRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	searchLimit int
}

func NewUserService(
	repo repository.UserRepository,
	sessions repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	searchLimit int,
) *UserService {
	if searchLimit <= 0 {
		searchLimit = 50
	}
	return &UserService{
		repo:        repo,
		sessions:    sessions,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		searchLimit: searchLimit,
	}
}

// generateJWT creates a new signed token for the user
func (s *UserService) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *UserService) parseJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Signup creates a user with a lowercase email and a bcrypt password hash.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserResponse, error) {
	email := models.NormalizeEmail(req.Email)
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User signed up", "userID", user.ID)

	resp := models.NewUserResponse(&user)
	return &resp, nil
}

// Login verifies the password and returns the user's live token, issuing a
// new one only when no session exists. Every failure looks the same.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("Login lookup failed", "error", err)
		}
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	existing, err := s.sessions.Get(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if existing != "" {
		if _, err := s.parseJWT(existing); err == nil {
			return existing, nil
		}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	// a stored token that no longer parses is replaced outright
	if existing != "" {
		if err := s.sessions.Save(ctx, user.ID, token, s.tokenTTL); err != nil {
			return "", fmt.Errorf("failed to store session: %w", err)
		}
		return token, nil
	}

	stored, err := s.sessions.SaveIfAbsent(ctx, user.ID, token, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	if stored {
		return token, nil
	}

	// a concurrent login stored its token first; share it
	winner, err := s.sessions.Get(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if winner == "" {
		// the winner's session ended in between
		if err := s.sessions.Save(ctx, user.ID, token, s.tokenTTL); err != nil {
			return "", fmt.Errorf("failed to store session: %w", err)
		}
		return token, nil
	}
	return winner, nil
}

// Logout ends the user's session; the token stops authenticating at once.
func (s *UserService) Logout(ctx context.Context, userID uint) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a token to its user. The token must carry a valid
// signature and also be the user's current session.
func (s *UserService) Authenticate(ctx context.Context, token string) (uint, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return 0, err
	}

	live, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}
	if live != token {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// Search matches an email exactly when q contains '@', otherwise a name
// substring. Both comparisons ignore case.
func (s *UserService) Search(ctx context.Context, query string) ([]models.UserResponse, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	var (
		users []models.User
		err   error
	)
	if strings.Contains(query, "@") {
		users, err = s.repo.SearchByEmail(ctx, query, s.searchLimit)
	} else {
		users, err = s.repo.SearchByName(ctx, query, s.searchLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return models.NewUserResponses(users), nil
}
