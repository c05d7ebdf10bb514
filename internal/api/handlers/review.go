package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/aaravmahajanofficial/online-shop/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	pages         config.Catalog
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService, pages config.Catalog) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, pages: pages, validator: validator.New()}
}

// CreateReview godoc
//
//	@Summary		Review a product
//	@Description	Markup is stripped from the text. Rating is 1 to 5.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		models.CreateReviewRequest	true	"Review"
//	@Success		201		{object}	models.Review				"Created review"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or unknown product"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/reviews [post]
func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r, "create review")
		if !ok {
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to create review", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Review created", slog.String("reviewId", review.ID.String()))
		response.Success(w, http.StatusCreated, review)
	}
}

// GetReview godoc
//
//	@Summary	Get a review
//	@Tags		Reviews
//	@Produce	json
//	@Param		id	path		string					true	"Review ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Review			"Review"
//	@Failure	400	{object}	response.ErrorResponse	"Invalid review ID"
//	@Failure	404	{object}	response.ErrorResponse	"Review not found"
//	@Router		/reviews/{id} [get]
func (h *ReviewHandler) GetReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		review, err := h.reviewService.GetReview(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// ListReviews godoc
//
//	@Summary	List reviews
//	@Tags		Reviews
//	@Produce	json
//	@Param		product	query		int												false	"Only reviews of this product"
//	@Param		page	query		int												false	"Page number (default: 1)"	minimum(1)
//	@Param		limit	query		int												false	"Items per page (default: 25, max: 100)"	minimum(1)
//	@Success	200		{object}	models.PaginatedResponse{Data=[]models.Review}	"Reviews"
//	@Failure	400		{object}	response.ErrorResponse							"Invalid query"
//	@Router		/reviews [get]
func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := utils.ParsePagination(r, h.pages.DefaultPageSize, h.pages.MaxPageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		var productID *int64

		if raw := r.URL.Query().Get("product"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.Error(w, errors.ValidationError("Invalid product parameter"))
				return
			}

			productID = &id
		}

		reviews, total, err := h.reviewService.ListReviews(r.Context(), productID, page, size)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list reviews", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewPage(reviews, total, page, size))
	}
}

// UpdateReview godoc
//
//	@Summary		Edit a review
//	@Description	Only the author may edit a review.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Review ID (UUID)"	Format(uuid)
//	@Param			review	body		models.UpdateReviewRequest	true	"Fields to change"
//	@Success		200		{object}	models.Review				"Updated review"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Not the author"
//	@Failure		404		{object}	response.ErrorResponse		"Review not found"
//	@Security		BearerAuth
//	@Router			/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authenticated(w, r, "update review")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.UpdateReview(r.Context(), claims.UserID, id, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to update review", slog.String("reviewId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// DeleteReview godoc
//
//	@Summary		Delete a review
//	@Description	The author or a staff account may delete a review.
//	@Tags			Reviews
//	@Param			id	path	string	true	"Review ID (UUID)"	Format(uuid)
//	@Success		204
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Not the author"
//	@Failure		404	{object}	response.ErrorResponse	"Review not found"
//	@Security		BearerAuth
//	@Router			/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r, "delete review")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), claims.UserID, claims.IsStaff, id); err != nil {
			logger.Warn("Failed to delete review", slog.String("reviewId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Review deleted", slog.String("reviewId", id.String()))
		response.NoContent(w)
	}
}
