package notification

import (
	"context"
	"internhub/models"
	"log"
	"sync"
	"time"
)

// Mailer delivers an e-mail for an event.
type Mailer interface {
	SendEventEmail(ctx context.Context, event models.NotificationEvent) error
}

// Publisher forwards an event to a message bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Dispatcher stores every event as an in-app notification and forwards it
// to the optional mailer and publisher in the background.
type Dispatcher struct {
	service   *Service
	mailer    Mailer
	publisher Publisher
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewDispatcher(service *Service, mailer Mailer, publisher Publisher) *Dispatcher {
	return &Dispatcher{
		service:   service,
		mailer:    mailer,
		publisher: publisher,
		timeout:   15 * time.Second,
	}
}

// Notify persists the in-app notification synchronously. Only that step can
// return an error; e-mail and bus delivery are logged.
func (d *Dispatcher) Notify(ctx context.Context, event models.NotificationEvent) error {
	n := &models.Notification{
		UserID:  event.UserID,
		Type:    event.Kind,
		Title:   event.Title,
		Message: event.Message,
	}
	if err := d.service.Create(ctx, n); err != nil {
		return err
	}

	if d.mailer != nil && event.UserEmail != "" {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			bctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := d.mailer.SendEventEmail(bctx, event); err != nil {
				log.Printf("[NOTIFICATION] Error sending %s email to %s: %v", event.Kind, event.UserEmail, err)
			}
		}()
	}

	if d.publisher != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			bctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := d.publisher.Publish(bctx, event.Kind+"."+event.UserID, event); err != nil {
				log.Printf("[NOTIFICATION] Error publishing %s event: %v", event.Kind, err)
			}
		}()
	}
	return nil
}

// Wait blocks until background deliveries finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
