package catalog

import (
	"context"
	"fmt"
	"internhub/models"

	"github.com/go-resty/resty/v2"
)

type supabaseTask struct {
	ID          models.FlexibleID `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Sequence    *int              `json:"sequence"`
}

// Supabase reads task definitions from the `tasks` table of a Supabase
// project, keyed by simulation_id.
type Supabase struct {
	client *resty.Client
}

func NewSupabase(client *resty.Client) *Supabase {
	return &Supabase{client: client}
}

func (s *Supabase) Lookup(ctx context.Context, internshipID string) Result {
	var rows []supabaseTask
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":        "id,title,description,sequence",
			"simulation_id": "eq." + internshipID,
		}).
		SetResult(&rows).
		Get("/rest/v1/tasks")
	if err != nil {
		return Unavailable(fmt.Errorf("fetch tasks for simulation %s: %w", internshipID, err))
	}
	if resp.IsError() {
		return Failed(fmt.Errorf("fetch tasks for simulation %s: status %d: %s", internshipID, resp.StatusCode(), resp.String()))
	}
	if len(rows) == 0 {
		return Absent()
	}

	sorted := sortTasks(rows)
	tasks := make([]models.TaskDefinition, len(sorted))
	for i, row := range sorted {
		tasks[i] = models.TaskDefinition{
			TaskID:      row.ID.String(),
			Title:       row.Title,
			Order:       i + 1,
			Description: row.Description,
		}
	}
	return OK(tasks)
}
