package ledger

import (
	"context"
	"fmt"
	"internhub/models"

	"gorm.io/gorm"
)

// Gorm reads the ledger table directly, for deployments where the ledger
// lives in the same Postgres database.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Query(ctx context.Context, userID, internshipID string) Result {
	var rows []models.TaskProgress
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND simulation_id = ?", userID, internshipID).
		Find(&rows).Error
	if err != nil {
		return classify(fmt.Errorf("query progress for user %s: %w", userID, err))
	}

	out := make([]models.ProgressRow, len(rows))
	for i, row := range rows {
		out[i] = models.ProgressRow{
			UserID:       row.UserID,
			InternshipID: row.InternshipID,
			TaskID:       row.TaskID,
			Status:       row.Status,
		}
	}
	return OK(out)
}
