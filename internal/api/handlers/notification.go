package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/aaravmahajanofficial/online-shop/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	pages               config.Catalog
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService, pages config.Catalog) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		pages:               pages,
		validator:           validator.New(),
	}
}

// SendEmail godoc
//
//	@Summary		Send an email (staff)
//	@Tags			Notifications
//	@Accept			json
//	@Produce		json
//	@Param			email	body		models.EmailNotificationRequest	true	"Email"
//	@Success		201		{object}	models.NotificationResponse		"Email sent"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		403		{object}	response.ErrorResponse			"Staff access required"
//	@Failure		500		{object}	response.ErrorResponse			"Email provider failure"
//	@Security		BearerAuth
//	@Router			/notifications/email [post]
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		notification, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email notification", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, notification)
	}
}

// GetNotification godoc
//
//	@Summary	Get a notification (staff)
//	@Tags		Notifications
//	@Produce	json
//	@Param		id	path		string					true	"Notification ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Notification		"Notification"
//	@Failure	404	{object}	response.ErrorResponse	"Notification not found"
//	@Security	BearerAuth
//	@Router		/notifications/{id} [get]
func (h *NotificationHandler) GetNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		notification, err := h.notificationService.GetNotification(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notification)
	}
}

// ListNotifications godoc
//
//	@Summary	List notifications (staff)
//	@Tags		Notifications
//	@Produce	json
//	@Param		page	query		int														false	"Page number (default: 1)"	minimum(1)
//	@Param		limit	query		int														false	"Items per page (default: 25, max: 100)"	minimum(1)
//	@Success	200		{object}	models.PaginatedResponse{Data=[]models.Notification}	"Notifications, newest first"
//	@Failure	403		{object}	response.ErrorResponse									"Staff access required"
//	@Security	BearerAuth
//	@Router		/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, size, err := utils.ParsePagination(r, h.pages.DefaultPageSize, h.pages.MaxPageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Notifications listed", slog.Int("count", len(notifications)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.NewPage(notifications, total, page, size))
	}
}
