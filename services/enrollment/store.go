// Package enrollment owns the enrollment record set: enrolling users in
// internships, marking tasks complete, and listing candidates with
// reconciled progress.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"internhub/catalog"
	"internhub/ledger"
	"internhub/models"
	"internhub/storage"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskCatalog resolves the task list of an internship.
type TaskCatalog interface {
	Lookup(ctx context.Context, internshipID string) catalog.Result
}

// ProgressLedger answers per-user completion rows for an internship.
type ProgressLedger interface {
	Query(ctx context.Context, userID, internshipID string) ledger.Result
}

// Notifier receives domain events. Delivery failures never fail the
// operation that emitted them.
type Notifier interface {
	Notify(ctx context.Context, event models.NotificationEvent) error
}

// EnrollInput carries the fields of an enroll request. UserName and
// InternshipName are optional.
type EnrollInput struct {
	UserID         string
	UserName       string
	UserEmail      string
	InternshipID   string
	InternshipName string
}

// EnrollResult is the outcome of Enroll. AlreadyEnrolled is set when the
// pair existed and nothing changed.
type EnrollResult struct {
	Enrollment      models.Enrollment
	AlreadyEnrolled bool
}

// Store is the single writer of the enrollment record set. Every mutation
// holds the write lock across the in-memory change and the save.
type Store struct {
	mu      sync.RWMutex
	records []models.Enrollment

	repo     storage.Repository
	catalog  TaskCatalog
	ledger   ProgressLedger
	notifier Notifier

	ledgerTimeout time.Duration
	workers       int
	now           func() time.Time
	newID         func() string
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the receiver of enrollment events.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLedgerTimeout bounds every ledger query.
func WithLedgerTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ledgerTimeout = d
		}
	}
}

// WithWorkers bounds concurrent ledger queries while listing candidates.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the synthetic task id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore loads the record set from repo. Nil catalog or ledger are
// replaced by disabled ones.
func NewStore(ctx context.Context, repo storage.Repository, tasks TaskCatalog, progress ProgressLedger, opts ...Option) (*Store, error) {
	if tasks == nil {
		tasks = catalog.Disabled{}
	}
	if progress == nil {
		progress = ledger.Disabled{}
	}

	s := &Store{
		repo:          repo,
		catalog:       tasks,
		ledger:        progress,
		ledgerTimeout: 3 * time.Second,
		workers:       8,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load enrollments: %v", ErrPersistence, err)
	}
	s.records = records
	log.Printf("[ENROLLMENT] Loaded %d enrollments", len(records))
	return s, nil
}

// Enroll creates the enrollment of a user in an internship. A second call
// for the same pair returns the stored record with AlreadyEnrolled set.
func (s *Store) Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.UserEmail = strings.TrimSpace(in.UserEmail)
	in.InternshipID = strings.TrimSpace(in.InternshipID)
	in.UserName = strings.TrimSpace(in.UserName)

	if in.UserID == "" || in.UserEmail == "" || in.InternshipID == "" {
		return EnrollResult{}, fmt.Errorf("%w: user_id, user_email and internship_id are required", ErrValidation)
	}

	if existing, ok := s.find(in.UserID, in.InternshipID); ok {
		return EnrollResult{Enrollment: existing, AlreadyEnrolled: true}, nil
	}

	// Resolved outside the lock; the catalog may be remote.
	tasks := s.materializeTasks(ctx, in.InternshipID)

	userName := in.UserName
	if userName == "" {
		userName = emailLocalPart(in.UserEmail)
	}

	record := models.Enrollment{
		UserID:         in.UserID,
		UserName:       userName,
		UserEmail:      in.UserEmail,
		InternshipID:   in.InternshipID,
		InternshipName: in.InternshipName,
		EnrolledAt:     models.FormatTimestamp(s.now()),
		Tasks:          tasks,
	}

	s.mu.Lock()
	// Another request may have enrolled the pair while the catalog answered.
	if i := s.indexOf(in.UserID, in.InternshipID); i >= 0 {
		existing := s.records[i].Clone()
		s.mu.Unlock()
		return EnrollResult{Enrollment: existing, AlreadyEnrolled: true}, nil
	}
	s.records = append(s.records, record)
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		return EnrollResult{}, err
	}

	log.Printf("[ENROLLMENT] User %s enrolled in internship %s with %d tasks", record.UserID, record.InternshipID, len(record.Tasks))
	s.notifyEnrolled(ctx, record)
	return EnrollResult{Enrollment: record.Clone()}, nil
}

// IsEnrolled reports whether the pair has an enrollment.
func (s *Store) IsEnrolled(userID, internshipID string) bool {
	_, ok := s.find(strings.TrimSpace(userID), strings.TrimSpace(internshipID))
	return ok
}

// Get returns a copy of the enrollment of the pair.
func (s *Store) Get(userID, internshipID string) (models.Enrollment, error) {
	e, ok := s.find(userID, internshipID)
	if !ok {
		return models.Enrollment{}, fmt.Errorf("%w: user %s is not enrolled in internship %s", ErrNotFound, userID, internshipID)
	}
	return e, nil
}

// CompleteTask marks a task of the user's enrollment completed. Completing
// an already completed task succeeds without change in state.
func (s *Store) CompleteTask(ctx context.Context, internshipID, userID, taskID string) error {
	s.mu.Lock()

	matched := false
	var changed []models.Enrollment
	var task models.TaskRecord
	for i := range s.records {
		e := &s.records[i]
		if e.InternshipID != internshipID || e.UserID != userID {
			continue
		}
		for j := range e.Tasks {
			if e.Tasks[j].TaskID != taskID {
				continue
			}
			matched = true
			if !e.Tasks[j].Completed {
				e.Tasks[j].Completed = true
				task = e.Tasks[j]
				changed = append(changed, e.Clone())
			}
		}
	}
	if !matched {
		s.mu.Unlock()
		return fmt.Errorf("%w: task %s for user %s in internship %s", ErrNotFound, taskID, userID, internshipID)
	}

	err := s.saveLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	log.Printf("[ENROLLMENT] Task %s completed by user %s in internship %s", taskID, userID, internshipID)
	for _, e := range changed {
		s.notifyTaskCompleted(ctx, e, task)
	}
	return nil
}

// Count returns the number of stored enrollments.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) materializeTasks(ctx context.Context, internshipID string) []models.TaskRecord {
	res := s.catalog.Lookup(ctx, internshipID)
	if res.Found() {
		tasks := make([]models.TaskRecord, len(res.Tasks))
		for i, def := range res.Tasks {
			tasks[i] = models.TaskRecord{
				TaskID:      def.TaskID,
				Title:       def.Title,
				Order:       def.Order,
				Description: def.Description,
				Completed:   false,
			}
		}
		return tasks
	}

	if (res.Status == catalog.StatusUnavailable || res.Status == catalog.StatusFailed) && !errors.Is(res.Err, catalog.ErrDisabled) {
		log.Printf("[ENROLLMENT] Warning: %v: task catalog %s for internship %s: %v", ErrCollaboratorUnavailable, res.Status, internshipID, res.Err)
	}
	return []models.TaskRecord{{
		TaskID:    s.newID(),
		Title:     models.SyntheticTaskTitle,
		Order:     1,
		Completed: false,
	}}
}

func (s *Store) notifyEnrolled(ctx context.Context, e models.Enrollment) {
	if s.notifier == nil {
		return
	}
	name := e.InternshipName
	if name == "" {
		name = "internship " + e.InternshipID
	}
	event := models.NotificationEvent{
		Kind:      models.NotificationEnrollment,
		UserID:    e.UserID,
		UserEmail: e.UserEmail,
		UserName:  e.UserName,
		Title:     "Enrollment Successful",
		Message:   fmt.Sprintf("You have enrolled in %s. %d task(s) are waiting for you.", name, len(e.Tasks)),
		Metadata: map[string]string{
			"internship_id":   e.InternshipID,
			"internship_name": e.InternshipName,
		},
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		log.Printf("[ENROLLMENT] Warning: enrollment notification for user %s failed: %v", e.UserID, err)
	}
}

func (s *Store) notifyTaskCompleted(ctx context.Context, e models.Enrollment, task models.TaskRecord) {
	if s.notifier == nil {
		return
	}
	title := task.Title
	if title == "" {
		title = task.TaskID
	}
	event := models.NotificationEvent{
		Kind:      models.NotificationTask,
		UserID:    e.UserID,
		UserEmail: e.UserEmail,
		UserName:  e.UserName,
		Title:     "Task Completed",
		Message:   fmt.Sprintf("%s is marked as completed (%d of %d done).", title, e.CompletedCount(), len(e.Tasks)),
		Metadata: map[string]string{
			"internship_id": e.InternshipID,
			"task_id":       task.TaskID,
		},
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		log.Printf("[ENROLLMENT] Warning: task notification for user %s failed: %v", e.UserID, err)
	}
}

// saveLocked persists the whole set. Caller holds s.mu.
func (s *Store) saveLocked(ctx context.Context) error {
	snapshot := make([]models.Enrollment, len(s.records))
	for i, e := range s.records {
		snapshot[i] = e.Clone()
	}
	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		log.Printf("[ENROLLMENT] Error saving %d enrollments: %v", len(snapshot), err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) find(userID, internshipID string) (models.Enrollment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(userID, internshipID); i >= 0 {
		return s.records[i].Clone(), true
	}
	return models.Enrollment{}, false
}

// indexOf requires s.mu to be held.
func (s *Store) indexOf(userID, internshipID string) int {
	for i := range s.records {
		if s.records[i].UserID == userID && s.records[i].InternshipID == internshipID {
			return i
		}
	}
	return -1
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
