package ticket

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/identifier"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

type fakeTickets struct {
	mu   sync.Mutex
	rows []*domain.Ticket
}

func (f *fakeTickets) Create(_ context.Context, tk *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *tk
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeTickets) ListByProject(_ context.Context, projectID domain.ProjectID, kind domain.TicketKind) ([]*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Ticket
	for _, tk := range f.rows {
		if tk.ProjectID == projectID && tk.Kind == kind {
			out = append(out, tk)
		}
	}
	return out, nil
}

type fakeProjects struct {
	rows map[domain.ProjectID]*domain.Project
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) error {
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	if p, ok := f.rows[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeProjects) GetByKey(_ context.Context, key string) (*domain.Project, error) {
	for _, p := range f.rows {
		if p.Key == key {
			return p, nil
		}
	}
	return nil, nil
}

type memorySequences struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (s *memorySequences) Next(_ context.Context, scopeKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[scopeKey]++
	return s.counters[scopeKey], nil
}

func testAllocator() *identifier.Allocator {
	return identifier.NewAllocator(&memorySequences{counters: make(map[string]int64)}, zerolog.Nop())
}

func TestCreateTaskAllocatesProjectScopedIdentifier(t *testing.T) {
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "PROJ", Name: "Apollo"}
	projects := &fakeProjects{rows: map[domain.ProjectID]*domain.Project{project.ID: project}}
	tickets := &fakeTickets{}
	uc := NewCreateTask(tickets, projects, testAllocator())
	author := domain.NewUserID(uuid.New())

	for _, want := range []string{"PROJ-1", "PROJ-2"} {
		res, err := uc.Execute(context.Background(), CreateTaskInput{
			ProjectID:   project.ID,
			Title:       "fix the build",
			CreatedByID: author,
		})
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		if res.Ticket.Identifier != want {
			t.Errorf("identifier = %q, want %q", res.Ticket.Identifier, want)
		}
		if res.Ticket.Kind != domain.TicketTask {
			t.Errorf("kind = %q, want task", res.Ticket.Kind)
		}
	}
	if len(tickets.rows) != 2 {
		t.Errorf("persisted tickets = %d, want 2", len(tickets.rows))
	}
}

func TestCreateIncidentUsesGlobalPaddedScope(t *testing.T) {
	alloc := testAllocator()
	p1 := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "PROJ", Name: "Apollo"}
	p2 := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "OPS", Name: "Ops"}
	projects := &fakeProjects{rows: map[domain.ProjectID]*domain.Project{p1.ID: p1, p2.ID: p2}}
	tickets := &fakeTickets{}
	uc := NewCreateIncident(tickets, projects, alloc)
	author := domain.NewUserID(uuid.New())

	// Incidents share one counter across projects.
	res1, err := uc.Execute(context.Background(), CreateIncidentInput{ProjectID: p1.ID, Title: "db down", CreatedByID: author})
	if err != nil {
		t.Fatal(err)
	}
	res2, err := uc.Execute(context.Background(), CreateIncidentInput{ProjectID: p2.ID, Title: "queue backlog", CreatedByID: author})
	if err != nil {
		t.Fatal(err)
	}
	if res1.Ticket.Identifier != "INC-001" || res2.Ticket.Identifier != "INC-002" {
		t.Errorf("identifiers = %q, %q; want INC-001, INC-002", res1.Ticket.Identifier, res2.Ticket.Identifier)
	}
}

func TestListByProjectFiltersKind(t *testing.T) {
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "PROJ", Name: "Apollo"}
	projects := &fakeProjects{rows: map[domain.ProjectID]*domain.Project{project.ID: project}}
	tickets := &fakeTickets{}
	author := domain.NewUserID(uuid.New())
	alloc := testAllocator()

	taskUC := NewCreateTask(tickets, projects, alloc)
	incidentUC := NewCreateIncident(tickets, projects, alloc)
	if _, err := taskUC.Execute(context.Background(), CreateTaskInput{ProjectID: project.ID, Title: "a", CreatedByID: author}); err != nil {
		t.Fatal(err)
	}
	if _, err := incidentUC.Execute(context.Background(), CreateIncidentInput{ProjectID: project.ID, Title: "b", CreatedByID: author}); err != nil {
		t.Fatal(err)
	}

	listUC := NewListByProject(tickets, projects)
	res, err := listUC.Execute(context.Background(), ListByProjectInput{ProjectID: project.ID, Kind: domain.TicketTask})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tickets) != 1 || res.Tickets[0].Kind != domain.TicketTask {
		t.Errorf("tasks = %+v, want exactly one task", res.Tickets)
	}
	if _, err := listUC.Execute(context.Background(), ListByProjectInput{ProjectID: domain.NewProjectID(uuid.New()), Kind: domain.TicketTask}); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("unknown project err = %v, want ErrNotFound", err)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "PROJ"}
	projects := &fakeProjects{rows: map[domain.ProjectID]*domain.Project{project.ID: project}}
	uc := NewCreateTask(&fakeTickets{}, projects, testAllocator())

	if _, err := uc.Execute(context.Background(), CreateTaskInput{ProjectID: project.ID, Title: "  "}); !errors.Is(err, domerrors.ErrValidation) {
		t.Errorf("blank title err = %v, want ErrValidation", err)
	}
	if _, err := uc.Execute(context.Background(), CreateTaskInput{ProjectID: domain.NewProjectID(uuid.New()), Title: "x"}); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("unknown project err = %v, want ErrNotFound", err)
	}
}
