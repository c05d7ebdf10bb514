package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/google/uuid"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	// ListReviews returns reviews newest first, limited to one product when productID is set.
	ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

const reviewColumns = `r.id, r.user_id, u.username, r.product_id, r.text, r.rating, r.created_at`

func scanReview(row rowScanner) (*models.Review, error) {
	review := &models.Review{}

	err := row.Scan(&review.ID, &review.UserID, &review.Author, &review.ProductID, &review.Text, &review.Rating, &review.CreatedAt)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (id, user_id, product_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, review.ID, review.UserID, review.ProductID, review.Text, review.Rating).
		Scan(&review.CreatedAt)

	return translateError("failed to create review", err)
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	review, err := scanReview(executor(ctx, r.DB).QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := executor(ctx, r.DB)

	// a NULL product id matches every review
	var total int
	if err := db.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM reviews WHERE ($1::BIGINT IS NULL OR product_id = $1)`, productID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE ($1::BIGINT IS NULL OR r.product_id = $1)
		ORDER BY r.created_at DESC, r.id
		LIMIT $2 OFFSET $3`

	rows, err := db.QueryContext(dbCtx, query, productID, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	reviews := make([]models.Review, 0)

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `UPDATE reviews SET text = $1, rating = $2 WHERE id = $3`, review.Text, review.Rating, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return expectAffected(result, "failed to update review")
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return expectAffected(result, "failed to delete review")
}
