package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error)
	UpdateReview(ctx context.Context, userID, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, isStaff bool, id uuid.UUID) error
}

type reviewService struct {
	repo   repository.ReviewRepository
	policy *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo, policy: bluemonday.StrictPolicy()}
}

// clean strips every tag from review text.
func (s *reviewService) clean(text string) (string, error) {
	text = strings.TrimSpace(s.policy.Sanitize(text))
	if text == "" {
		return "", errors.FieldError("text", "must contain text")
	}

	return text, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	text, err := s.clean(req.Text)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: req.ProductID,
		Text:      text,
		Rating:    req.Rating,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, repoError(err, "Review")
	}

	middleware.LoggerFromContext(ctx).Info("Review created", slog.String("reviewId", review.ID.String()), slog.Int64("productId", review.ProductID))

	// read back for the author name
	created, err := s.repo.GetReviewByID(ctx, review.ID)
	if err != nil {
		return nil, repoError(err, "Review")
	}

	return created, nil
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Review")
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error) {
	reviews, total, err := s.repo.ListReviews(ctx, productID, page, size)
	if err != nil {
		return nil, 0, repoError(err, "Reviews")
	}

	return reviews, total, nil
}

// UpdateReview lets only the author change their review.
func (s *reviewService) UpdateReview(ctx context.Context, userID, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Review")
	}

	if review.UserID != userID {
		return nil, errors.ForbiddenError("Only the author can edit this review")
	}

	if req.Text != nil {
		text, err := s.clean(*req.Text)
		if err != nil {
			return nil, err
		}

		review.Text = text
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, repoError(err, "Review")
	}

	return review, nil
}

// DeleteReview is allowed to the author and to staff.
func (s *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, isStaff bool, id uuid.UUID) error {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return repoError(err, "Review")
	}

	if review.UserID != userID && !isStaff {
		return errors.ForbiddenError("Only the author or staff can delete this review")
	}

	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return repoError(err, "Review")
	}

	middleware.LoggerFromContext(ctx).Info("Review deleted", slog.String("reviewId", id.String()), slog.Bool("byStaff", review.UserID != userID))

	return nil
}
