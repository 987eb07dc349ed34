package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// UserStore is the persistent identity collection. Create reports
// models.ErrEmailTaken when the email is already registered.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type Service struct {
	users  UserStore
	tokens *TokenManager
	cost   int
	logger *zap.Logger
}

func NewService(users UserStore, tokens *TokenManager, bcryptCost int, logger *zap.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &Service{
		users:  users,
		tokens: tokens,
		cost:   bcryptCost,
		logger: logger,
	}
}

// Register creates a user and issues a token bound to the new id. The
// password is stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both produce the same generic error so the response cannot be
// used for account enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves the acting user from a bearer token.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidCredentials, "invalid token")
	}
	return s.users.GetByID(ctx, userID)
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ProfileUpdate carries the self-service profile mutation. Empty fields
// leave the stored value unchanged; the password is re-hashed only when a
// new plaintext is supplied.
type ProfileUpdate struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Address  *models.Address `json:"address"`
	Password string          `json:"password"`
}

// UpdateProfile applies a partial profile update and issues a fresh token.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, string, error) {
	updates := map[string]interface{}{}
	if update.Name != "" {
		updates["name"] = update.Name
	}
	if update.Email != "" {
		updates["email"] = update.Email
	}
	if update.Phone != "" {
		updates["phone"] = update.Phone
	}
	if update.Address != nil {
		updates["address_street"] = update.Address.Street
		updates["address_city"] = update.Address.City
		updates["address_state"] = update.Address.State
		updates["address_zip_code"] = update.Address.ZipCode
		updates["address_country"] = update.Address.Country
	}
	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), s.cost)
		if err != nil {
			return nil, "", fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hashed)
	}

	user, err := s.users.Update(ctx, userID, updates)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *Service) Users(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}
