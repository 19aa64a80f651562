package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dropship-store/internal/data/entity"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/dto/request"
	"dropship-store/internal/dto/response"
	"dropship-store/pkg/database"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, claims *utils.TokenClaims) error
	// SeedAdmin creates the configured admin account if it does not exist yet.
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}

	// 2. Email must be free
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, validationError("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     entity.RoleCustomer,
	}

	// 3. Save; the unique index catches a concurrent registration
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, validationError("email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, claims, err := utils.GenerateToken(s.config.JWT.Secret, user.ID, string(user.Role), ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID))
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID))

	resp := response.AuthToResponse(user, token, claims.ExpiresAt.Time)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil {
		return fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	revoked := &entity.RevokedToken{
		Base:      entity.Base{ID: claims.ID},
		User:      claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.repo.Token.Revoke(ctx, revoked); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *authService) SeedAdmin(ctx context.Context) error {
	admin := s.config.Admin
	if admin.Email == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			s.log.Warn("Configured admin email belongs to a customer account", zap.String("email", admin.Email))
		}
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	user := &entity.User{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: hashedPassword,
		Role:     entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info("Admin account created", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return nil
}
