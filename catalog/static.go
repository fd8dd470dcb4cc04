package catalog

import (
	"context"
	"fmt"
	"internhub/models"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Static is an in-memory catalog.
type Static struct {
	entries map[string][]models.TaskDefinition
}

// NewStatic copies entries and sorts each task list by Order.
func NewStatic(entries map[string][]models.TaskDefinition) *Static {
	s := &Static{entries: make(map[string][]models.TaskDefinition, len(entries))}
	for id, tasks := range entries {
		sorted := make([]models.TaskDefinition, len(tasks))
		copy(sorted, tasks)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
		s.entries[id] = sorted
	}
	return s
}

func (s *Static) Lookup(ctx context.Context, internshipID string) Result {
	tasks, ok := s.entries[internshipID]
	if !ok {
		return Absent()
	}
	out := make([]models.TaskDefinition, len(tasks))
	copy(out, tasks)
	return OK(out)
}

type catalogFile struct {
	Internships map[string]struct {
		Name  string                  `yaml:"name"`
		Tasks []models.TaskDefinition `yaml:"tasks"`
	} `yaml:"internships"`
}

// LoadFile reads a YAML (or JSON) catalog:
//
//	internships:
//	  "42":
//	    name: Backend Simulation
//	    tasks:
//	      - task_id: t1
//	        title: Task One
//	        order: 1
//
// Tasks without an order get their 1-based position.
func LoadFile(path string) (*Static, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse task catalog %s: %w", path, err)
	}

	entries := make(map[string][]models.TaskDefinition, len(file.Internships))
	for id, internship := range file.Internships {
		tasks := make([]models.TaskDefinition, len(internship.Tasks))
		for i, t := range internship.Tasks {
			if t.Order == 0 {
				t.Order = i + 1
			}
			if t.TaskID == "" {
				return nil, fmt.Errorf("task catalog %s: internship %s task %d has no task_id", path, id, i+1)
			}
			tasks[i] = t
		}
		entries[id] = tasks
	}
	return NewStatic(entries), nil
}
