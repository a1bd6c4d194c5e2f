package services

import (
	"context"
	"errors"
	"log"

	"dailyshop-backend/internal/auth"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
)

// Bootstrap admin created on first run; the mobile number doubles as the
// login id, matching the historic data files.
const (
	DefaultAdminMobile   = "9999999999"
	defaultAdminPassword = "admin123"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
	TOTP       *TOTPService // optional
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager, TOTP: totp}
}

// EnsureDefaultAdmin creates the bootstrap admin account when the users
// table is empty. Idempotent.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		UserID:       models.MakeItemID(DefaultAdminMobile, models.RoleAdmin),
		Name:         "Admin",
		Role:         models.RoleAdmin,
		Mobile:       DefaultAdminMobile,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("[Users] Bootstrap admin created (mobile %s); change the default password", DefaultAdminMobile)
	return nil
}

// CreateUser creates a user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Mobile == "" || req.Password == "" {
		return nil, errors.New("name, mobile and password are required")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	user := &models.User{
		UserID:       models.MakeItemID(req.Mobile, role),
		Name:         req.Name,
		Role:         role,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signup registers a customer account.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	user, err := s.CreateUser(ctx, &models.CreateUserRequest{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Password: req.Password,
		Role:     models.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates by mobile number and password. Accounts with 2FA
// enrolled must also supply a valid TOTP code.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Mobile == "" || req.Password == "" {
		return nil, errors.New("mobile and password are required")
	}

	user, err := s.Repo.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, errors.New("invalid mobile or password")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("invalid mobile or password")
	}
	if !user.Active {
		return nil, errors.New("account is inactive")
	}

	if user.TOTPEnabled {
		if s.TOTP == nil {
			return nil, errors.New("2FA is enrolled but not configured on this server")
		}
		if err := s.TOTP.Verify(ctx, user.UserID, req.TOTPCode); err != nil {
			return nil, err
		}
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// UpdateUser applies an admin edit. An empty password leaves the hash alone.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.Get(ctx, userID)
}

// DeactivateUser soft-deletes: the row stays, the account cannot log in.
func (s *UserService) DeactivateUser(ctx context.Context, userID string) error {
	return s.Repo.SetActive(ctx, userID, false)
}
