package enrollment

import (
	"context"
	"errors"
	"internhub/catalog"
	"internhub/ledger"
	"internhub/models"
	"log"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ProgressSource tells where completed_tasks came from.
type ProgressSource string

const (
	SourceLedger   ProgressSource = "ledger"
	SourceEmbedded ProgressSource = "embedded"
)

// CandidateProgress is an enrollment enriched with reconciled progress.
type CandidateProgress struct {
	models.Enrollment
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	Progress       int            `json:"progress"`
	ProgressSource ProgressSource `json:"progress_source"`
}

// ListCandidates returns the enrollments of an internship, newest first,
// with progress reconciled against the ledger.
func (s *Store) ListCandidates(ctx context.Context, internshipID string) ([]CandidateProgress, error) {
	candidates := s.snapshot(func(e models.Enrollment) bool { return e.InternshipID == internshipID })
	if len(candidates) == 0 {
		return []CandidateProgress{}, nil
	}

	catalogTotal := -1
	if res := s.catalog.Lookup(ctx, internshipID); res.Status == catalog.StatusOK {
		catalogTotal = len(res.Tasks)
	} else if res.Status != catalog.StatusAbsent && !errors.Is(res.Err, catalog.ErrDisabled) {
		log.Printf("[ENROLLMENT] Warning: %v: task catalog %s for internship %s: %v", ErrCollaboratorUnavailable, res.Status, internshipID, res.Err)
	}

	return s.withProgress(ctx, candidates, func(models.Enrollment) int { return catalogTotal })
}

// ListForUser returns every enrollment of a user, newest first, with
// reconciled progress.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]CandidateProgress, error) {
	enrollments := s.snapshot(func(e models.Enrollment) bool { return e.UserID == userID })
	if len(enrollments) == 0 {
		return []CandidateProgress{}, nil
	}

	totals := make(map[string]int)
	for _, e := range enrollments {
		if _, seen := totals[e.InternshipID]; seen {
			continue
		}
		totals[e.InternshipID] = -1
		if res := s.catalog.Lookup(ctx, e.InternshipID); res.Status == catalog.StatusOK {
			totals[e.InternshipID] = len(res.Tasks)
		}
	}

	return s.withProgress(ctx, enrollments, func(e models.Enrollment) int { return totals[e.InternshipID] })
}

// snapshot copies matching records sorted by enrolled_at descending.
func (s *Store) snapshot(match func(models.Enrollment) bool) []models.Enrollment {
	s.mu.RLock()
	out := make([]models.Enrollment, 0)
	for _, e := range s.records {
		if match(e) {
			out = append(out, e.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrolledAt > out[j].EnrolledAt })
	return out
}

// withProgress reconciles each enrollment concurrently. catalogTotal
// returns -1 when the catalog had no answer for the enrollment.
func (s *Store) withProgress(ctx context.Context, enrollments []models.Enrollment, catalogTotal func(models.Enrollment) int) ([]CandidateProgress, error) {
	out := make([]CandidateProgress, len(enrollments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range enrollments {
		g.Go(func() error {
			e := enrollments[i]
			total := catalogTotal(e)
			if total < 0 {
				total = len(e.Tasks)
			}
			completed, source := s.reconcile(gctx, e)
			out[i] = CandidateProgress{
				Enrollment:     e,
				TotalTasks:     total,
				CompletedTasks: completed,
				Progress:       progressPercent(completed, total),
				ProgressSource: source,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// reconcile picks the completed count for one enrollment: ledger rows when
// the ledger answers with at least one row, embedded flags otherwise. The
// embedded flags are never updated from the ledger.
func (s *Store) reconcile(ctx context.Context, e models.Enrollment) (int, ProgressSource) {
	qctx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
	defer cancel()

	res := s.ledger.Query(qctx, e.UserID, e.InternshipID)
	switch {
	case res.Status == ledger.StatusOK && len(res.Rows) > 0:
		return res.CompletedCount(), SourceLedger
	case res.Status == ledger.StatusOK:
		return e.CompletedCount(), SourceEmbedded
	default:
		if !errors.Is(res.Err, ledger.ErrDisabled) {
			log.Printf("[ENROLLMENT] Warning: %v: progress ledger %s for user %s: %v", ErrCollaboratorUnavailable, res.Status, e.UserID, res.Err)
		}
		return e.CompletedCount(), SourceEmbedded
	}
}

// progressPercent rounds half away from zero.
func progressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
