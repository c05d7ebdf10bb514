package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login returns a signed token. A rate limited attempt returns a TOO_MANY_REQUESTS error
	// together with a response carrying RetryAfter.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	repo        repository.UserRepository
	orderRepo   repository.OrderRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewUserService(repo repository.UserRepository, orderRepo repository.OrderRepository, rateLimiter repository.RateLimitRepository, security config.Security) UserService {
	ttl := time.Duration(security.JWTExpiryHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &userService{
		repo:        repo,
		orderRepo:   orderRepo,
		rateLimiter: rateLimiter,
		jwtKey:      []byte(security.JWTKey),
		tokenTTL:    ttl,
		now:         time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	if req.Password != req.ConfirmPassword {
		return nil, errors.FieldError("confirm_password", "passwords do not match")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Email or phone number already registered").WithError(err)
		}

		logger.Error("Failed to create user", slog.Any("error", err))

		return nil, repoError(err, "User")
	}

	logger.Info("User registered", slog.String("userId", user.ID.String()))

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	limit, err := s.rateLimiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !limit.Allowed {
		retryAfter := int(limit.RetryAfter.Seconds())

		return &models.LoginResponse{
				Success:    false,
				Message:    "Too many login attempts. Please try again later.",
				RetryAfter: retryAfter,
			}, errors.TooManyRequestsError("Too many login attempts, try again later").
				WithDetail(fmt.Sprintf("retry_after=%d", retryAfter))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.Warn("Failed login attempt", slog.Int("remainingTries", limit.Remaining))

		return nil, errors.UnauthorizedError("Invalid email or password").
			WithDetail(fmt.Sprintf("remaining_tries=%d", limit.Remaining))
	}

	now := s.now()

	claims := &models.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	logger.Info("User logged in", slog.String("userId", user.ID.String()))

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

// GetProfile returns the user with every order they placed, newest first.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User")
	}

	orders, _, err := s.orderRepo.ListOrdersByUser(ctx, userID, 1, 0)
	if err != nil {
		return nil, repoError(err, "Orders")
	}

	return &models.ProfileResponse{User: user, Orders: orders}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User")
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Email or phone number already registered").WithError(err)
		}

		return nil, repoError(err, "User")
	}

	return user, nil
}
