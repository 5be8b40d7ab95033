package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/wellness-service/internal/auth"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// ===== RESPONSE DTOs =====

type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ===== SERVICE INTERFACE =====

type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)

	// GetProfile re-reads the store so a since-deleted account yields
	// ErrNotFound even while its token is still cryptographically valid.
	GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error)

	UpdateLanguage(ctx context.Context, userID uint, req *validator.LanguageUpdateRequest) (*models.PublicUser, error)
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenIssuer
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenIssuer, logger *slog.Logger, v *validator.BusinessValidator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error) {
	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     models.UserRole(req.Role),
		Language: language,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error) {
	s.logger.Info("Login attempt", "email", req.Email)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Unknown email and wrong password collapse into the same error so the
	// endpoint cannot be used to probe which emails exist.
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Login succeeded", "user_id", user.ID)
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

func (s *authService) UpdateLanguage(ctx context.Context, userID uint, req *validator.LanguageUpdateRequest) (*models.PublicUser, error) {
	s.logger.Info("Updating language", "user_id", userID, "language", req.Language)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if err := s.repo.User().UpdateLanguage(ctx, userID, req.Language); err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update language: %w", err)
	}

	return s.GetProfile(ctx, userID)
}
