package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/pricing"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/aaravmahajanofficial/online-shop/pkg/sendgrid"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	// SendOrderConfirmation mails the order summary to the order's contact address.
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	htmlPolicy   *bluemonday.Policy
	textPolicy   *bluemonday.Policy
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{
		repo:         repo,
		emailService: emailService,
		htmlPolicy:   bluemonday.UGCPolicy(),
		textPolicy:   bluemonday.StrictPolicy(),
	}
}

// SendEmail records the notification, sends it and stores the delivery outcome.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	return n.deliver(ctx, models.NotificationTypeEmail, req)
}

func (n *notificationService) deliver(ctx context.Context, kind models.NotificationType, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	var metadata json.RawMessage

	if len(req.Metadata) > 0 {
		data, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, errors.InternalError("Failed to encode notification metadata").WithError(err)
		}

		metadata = data
	}

	if req.HTMLContent != "" {
		req.HTMLContent = n.htmlPolicy.Sanitize(req.HTMLContent)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      kind,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadata,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, repoError(err, "Notification")
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		logger.Error("Failed to send email", slog.String("notificationId", notification.ID.String()), slog.Any("error", err))

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record email failure", slog.String("notificationId", notification.ID.String()), slog.Any("error", updateErr))
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, repoError(err, "Notification")
	}

	logger.Info("Email sent", slog.String("notificationId", notification.ID.String()))

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		Recipient: notification.Recipient,
		CreatedAt: notification.CreatedAt,
	}, nil
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if order.Email == nil || *order.Email == "" {
		middleware.LoggerFromContext(ctx).Info("Order has no email, skipping confirmation", slog.String("orderId", order.ID.String()))
		return nil
	}

	var text, html strings.Builder

	fmt.Fprintf(&text, "Thank you for your order %s.\n\n", order.ID)
	html.WriteString("<p>Thank you for your order.</p><ul>")

	for _, item := range order.Items {
		name := n.textPolicy.Sanitize(item.ProductName)
		line := pricing.LineTotal(item.UnitPrice, item.Quantity)

		fmt.Fprintf(&text, "%s x %d: %s\n", item.ProductName, item.Quantity, line.StringFixed(2))
		fmt.Fprintf(&html, "<li>%s x %d: %s</li>", name, item.Quantity, line.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal: %s\n", order.TotalPrice.StringFixed(2))
	fmt.Fprintf(&html, "</ul><p>Total: <strong>%s</strong></p>", order.TotalPrice.StringFixed(2))

	_, err := n.deliver(ctx, models.NotificationTypeOrderConfirmation, &models.EmailNotificationRequest{
		To:          *order.Email,
		Subject:     "Order confirmation",
		Content:     text.String(),
		HTMLContent: html.String(),
		Metadata:    map[string]string{"order_id": order.ID.String()},
	})

	return err
}

func (n *notificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, err := n.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Notification")
	}

	return notification, nil
}

func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, repoError(err, "Notifications")
	}

	return notifications, total, nil
}
