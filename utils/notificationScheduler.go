package utils

import (
	"context"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// NotificationPurger removes read notifications older than a cutoff.
type NotificationPurger interface {
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}

// InitializeNotificationScheduler starts the daily retention job and
// returns the running scheduler so the caller can stop it.
func InitializeNotificationScheduler(purger NotificationPurger, retentionDays int) (*cron.Cron, error) {
	log.Println("[NOTIFICATION-SCHEDULER] Initializing notification scheduler...")

	c := cron.New()

	// Run daily at 3 AM server time
	_, err := c.AddFunc("0 3 * * *", func() {
		log.Println("[NOTIFICATION-SCHEDULER] Running daily notification cleanup...")
		PurgeOldNotifications(context.Background(), purger, retentionDays, time.Now())
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[NOTIFICATION-SCHEDULER] Notification scheduler started - keeps read notifications for %d days", retentionDays)
	return c, nil
}

// PurgeOldNotifications deletes read notifications created before the start
// of the day retentionDays before at.
func PurgeOldNotifications(ctx context.Context, purger NotificationPurger, retentionDays int, at time.Time) int64 {
	if retentionDays <= 0 {
		log.Println("[NOTIFICATION-SCHEDULER] Retention disabled, skipping cleanup")
		return 0
	}
	cutoff := now.With(at).BeginningOfDay().AddDate(0, 0, -retentionDays)

	deleted, err := purger.PurgeRead(ctx, cutoff)
	if err != nil {
		log.Printf("[NOTIFICATION-SCHEDULER] Error purging notifications: %v", err)
		return 0
	}
	log.Printf("[NOTIFICATION-SCHEDULER] Purged %d read notifications older than %s", deleted, cutoff.Format(time.RFC3339))
	return deleted
}
