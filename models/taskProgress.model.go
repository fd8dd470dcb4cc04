package models

import "time"

// TaskStatusCompleted is the only ledger status counted as done.
const TaskStatusCompleted = "completed"

// TaskProgress is a row of the user_task_progress ledger table. The table is
// owned by the learning frontend; this service only reads it.
type TaskProgress struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	InternshipID string    `json:"simulation_id" gorm:"column:simulation_id;index;not null"`
	TaskID       string    `json:"task_id" gorm:"not null"`
	Status       string    `json:"status" gorm:"default:'not_started'"` // not_started, in_progress, completed
	Comment      *string   `json:"comment"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (TaskProgress) TableName() string {
	return "user_task_progress"
}

// ProgressRow is the projection of a ledger row read by reconciliation.
type ProgressRow struct {
	UserID       string `json:"user_id"`
	InternshipID string `json:"internship_id"`
	TaskID       string `json:"task_id"`
	Status       string `json:"status"`
}
