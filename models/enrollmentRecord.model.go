package models

import "gorm.io/datatypes"

// EnrollmentRecord is the database row backing an Enrollment when
// ENROLLMENT_STORE=database. Tasks stay embedded as a JSON column.
type EnrollmentRecord struct {
	ID             uint                            `gorm:"primaryKey"`
	UserID         string                          `gorm:"uniqueIndex:idx_enrollment_user_internship;size:191;not null"`
	UserName       string                          `gorm:"default:''"`
	UserEmail      string                          `gorm:"not null"`
	InternshipID   string                          `gorm:"uniqueIndex:idx_enrollment_user_internship;size:191;not null"`
	InternshipName string                          `gorm:"default:''"`
	EnrolledAt     string                          `gorm:"index;size:32;not null"`
	Tasks          datatypes.JSONSlice[TaskRecord] `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (EnrollmentRecord) TableName() string {
	return "enrollments"
}

// ToEnrollment converts the row to its domain form.
func (r EnrollmentRecord) ToEnrollment() Enrollment {
	tasks := make([]TaskRecord, len(r.Tasks))
	copy(tasks, r.Tasks)
	return Enrollment{
		UserID:         r.UserID,
		UserName:       r.UserName,
		UserEmail:      r.UserEmail,
		InternshipID:   r.InternshipID,
		InternshipName: r.InternshipName,
		EnrolledAt:     r.EnrolledAt,
		Tasks:          tasks,
	}
}

// NewEnrollmentRecord builds a row from an Enrollment.
func NewEnrollmentRecord(e Enrollment) EnrollmentRecord {
	tasks := make([]TaskRecord, len(e.Tasks))
	copy(tasks, e.Tasks)
	return EnrollmentRecord{
		UserID:         e.UserID,
		UserName:       e.UserName,
		UserEmail:      e.UserEmail,
		InternshipID:   e.InternshipID,
		InternshipName: e.InternshipName,
		EnrolledAt:     e.EnrolledAt,
		Tasks:          datatypes.JSONSlice[TaskRecord](tasks),
	}
}
