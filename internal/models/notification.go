package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType tells staff-sent mail apart from mail the shop sends on its own.
type NotificationType string

const (
	NotificationTypeEmail             NotificationType = "email"
	NotificationTypeOrderConfirmation NotificationType = "order_confirmation"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Notification is the delivery record kept for every outgoing email. ErrorMessage holds
// the provider's answer when Status is failed.
type Notification struct {
	ID           uuid.UUID          `json:"id"`
	Type         NotificationType   `json:"type"`
	Recipient    string             `json:"recipient"`
	Subject      string             `json:"subject,omitempty"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Metadata     json.RawMessage    `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// EmailNotificationRequest is sent as is to SendGrid. HTMLContent is sanitised first and
// Content is the plain-text part.
type EmailNotificationRequest struct {
	To          string            `json:"to" validate:"required,email"`
	Subject     string            `json:"subject" validate:"required,max=255"`
	Content     string            `json:"content" validate:"required"`
	HTMLContent string            `json:"html_content,omitempty"`
	CC          []string          `json:"cc,omitempty" validate:"omitempty,max=10,dive,email"`
	BCC         []string          `json:"bcc,omitempty" validate:"omitempty,max=10,dive,email"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type NotificationResponse struct {
	ID        uuid.UUID          `json:"id"`
	Type      NotificationType   `json:"type"`
	Status    NotificationStatus `json:"status"`
	Recipient string             `json:"recipient"`
	CreatedAt time.Time          `json:"created_at"`
}
