package models

import "time"

// Notification kinds
const (
	NotificationEnrollment = "enrollment"
	NotificationTask       = "task"
	NotificationSystem     = "system"
)

// Notification is an in-app message shown to a user
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Type      string    `json:"type" gorm:"default:'system'"`
	Title     string    `json:"title"`
	Message   string    `json:"message" gorm:"type:text"`
	Read      bool      `json:"read" gorm:"column:is_read;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// NotificationEvent is emitted by domain operations and fanned out to
// in-app, e-mail and message-bus channels.
type NotificationEvent struct {
	Kind      string            `json:"kind"`
	UserID    string            `json:"user_id"`
	UserEmail string            `json:"user_email,omitempty"`
	UserName  string            `json:"user_name,omitempty"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
