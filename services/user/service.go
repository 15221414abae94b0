package user

import (
	"context"
	"fmt"
	"time"

	userRepo "bcal/database/repository/user"
	"bcal/models"
	"bcal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// sessionTTL bounds how long an issued token stays valid.
const sessionTTL = 24 * time.Hour

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Auth      AuthProvider
	AuthCache *redis.Client
}

// SignUp registers a new user and opens a session for them.
func (s *DefaultUserService) SignUp(req SignUpRequest) (*AuthSession, error) {
	existing, err := s.Repo.GetByEmail(req.OrganizationID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		ID:             uuid.New().String(),
		OrganizationID: req.OrganizationID,
		Email:          req.Email,
		Username:       req.Username,
		FullName:       req.FullName,
		PasswordHash:   string(hash),
		Role:           models.RoleUser,
		IsActive:       true,
	}
	if err := s.Repo.Create(&u); err != nil {
		return nil, err
	}
	return s.openSession(&u)
}

// SignIn authenticates the user via the configured provider and opens a session.
func (s *DefaultUserService) SignIn(req SignInRequest) (*AuthSession, error) {
	u, err := s.Repo.GetByEmail(req.OrganizationID, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.Auth.Authenticate(u, req.Password); err != nil {
		utils.GetLogger().Info("sign-in rejected",
			zap.String("provider", s.Auth.Name()),
			zap.String("org_id", req.OrganizationID),
		)
		return nil, ErrInvalidCredentials
	}
	return s.openSession(u)
}

// openSession issues a JWT, stores its hash on the user record and caches it.
// The stored hash is what keeps sign-out effective on a cache miss: the auth
// middleware's database fallback compares against it.
func (s *DefaultUserService) openSession(u *models.User) (*AuthSession, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.OrganizationID, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	if s.AuthCache != nil {
		key := utils.AuthCachePrefix + utils.HashToken(token)
		if err := s.AuthCache.Set(context.Background(), key, u.ID, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache session token", zap.Error(err))
		}
	}
	safe := *u
	safe.PasswordHash = ""
	return &AuthSession{Token: token, User: safe}, nil
}

// SignOut revokes the session: the stored token hash is cleared so the auth
// middleware's database fallback rejects the token, and the cache entry is
// dropped. Tokens that no longer parse still get their cache entry removed.
func (s *DefaultUserService) SignOut(token string) error {
	if userID, err := utils.ExtractIDFromToken(token); err == nil {
		u, err := s.Repo.GetByID(userID)
		if err != nil {
			return err
		}
		u.TokenHash = ""
		if err := s.Repo.Update(u); err != nil {
			return err
		}
	}
	if s.AuthCache == nil {
		return nil
	}
	key := utils.AuthCachePrefix + utils.HashToken(token)
	return s.AuthCache.Del(context.Background(), key).Err()
}

// GetUserByID returns one user.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// GetByEmail returns a user by email within an organization, or (nil, nil).
func (s *DefaultUserService) GetByEmail(orgID, email string) (*models.User, error) {
	return s.Repo.GetByEmail(orgID, email)
}

// ListByOrg returns all users in an organization.
func (s *DefaultUserService) ListByOrg(orgID string) ([]models.User, error) {
	return s.Repo.GetAllByOrg(orgID)
}

// Create inserts a user record directly. Used for guest accounts and admin
// provisioning; no session is opened.
func (s *DefaultUserService) Create(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return s.Repo.Create(u)
}

// Update persists changes to a user record.
func (s *DefaultUserService) Update(u *models.User) error {
	return s.Repo.Update(u)
}

// Deactivate soft-deletes a user. Their bookings and availability rows stay
// referenced but the user drops out of every assignment and listing path.
func (s *DefaultUserService) Deactivate(id string) error {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	u.IsActive = false
	return s.Repo.Update(u)
}

// UpdateFCMToken stores the user's push-notification token.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	u.FCMToken = token
	return s.Repo.Update(u)
}
