package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/ticket"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/http/middleware"
)

// TicketsHandler handles task and incident endpoints.
type TicketsHandler struct {
	createTask     *ticket.CreateTask
	createIncident *ticket.CreateIncident
	listByProject  *ticket.ListByProject
	validate       *validator.Validate
	log            zerolog.Logger
}

// NewTicketsHandler creates the handler.
func NewTicketsHandler(createTask *ticket.CreateTask, createIncident *ticket.CreateIncident, listByProject *ticket.ListByProject, log zerolog.Logger) *TicketsHandler {
	return &TicketsHandler{
		createTask:     createTask,
		createIncident: createIncident,
		listByProject:  listByProject,
		validate:       validator.New(),
		log:            log,
	}
}

// TicketResponse is the JSON shape for a task or incident.
type TicketResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Kind        string `json:"kind"`
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedByID string `json:"created_by_id"`
	CreatedAt   string `json:"created_at"`
}

func ticketResponse(tk *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          tk.ID.String(),
		ProjectID:   tk.ProjectID.String(),
		Kind:        string(tk.Kind),
		Identifier:  tk.Identifier,
		Title:       tk.Title,
		Description: tk.Description,
		CreatedByID: tk.CreatedByID.String(),
		CreatedAt:   tk.CreatedAt.Format(time.RFC3339),
	}
}

type createTicketBody struct {
	ProjectID   string `json:"project_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description" validate:"max=10000"`
	CreatedByID string `json:"created_by_id" validate:"required,uuid"`
}

func (h *TicketsHandler) decodeCreate(w http.ResponseWriter, r *http.Request) (*createTicketBody, bool) {
	var body createTicketBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return nil, false
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return nil, false
	}
	return &body, true
}

// CreateTask handles POST /tasks.
func (h *TicketsHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeCreate(w, r)
	if !ok {
		return
	}
	projectID, _ := uuid.Parse(body.ProjectID)
	createdByID, _ := uuid.Parse(body.CreatedByID)
	result, err := h.createTask.Execute(r.Context(), ticket.CreateTaskInput{
		ProjectID:   domain.NewProjectID(projectID),
		Title:       body.Title,
		Description: body.Description,
		CreatedByID: domain.NewUserID(createdByID),
	})
	if err != nil {
		middleware.RecordAllocation("task", false)
		writeDomainErr(w, h.log, err)
		return
	}
	middleware.RecordAllocation("task", true)
	writeJSON(w, http.StatusCreated, ticketResponse(result.Ticket))
}

// CreateIncident handles POST /incidents.
func (h *TicketsHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeCreate(w, r)
	if !ok {
		return
	}
	projectID, _ := uuid.Parse(body.ProjectID)
	createdByID, _ := uuid.Parse(body.CreatedByID)
	result, err := h.createIncident.Execute(r.Context(), ticket.CreateIncidentInput{
		ProjectID:   domain.NewProjectID(projectID),
		Title:       body.Title,
		Description: body.Description,
		CreatedByID: domain.NewUserID(createdByID),
	})
	if err != nil {
		middleware.RecordAllocation("incident", false)
		writeDomainErr(w, h.log, err)
		return
	}
	middleware.RecordAllocation("incident", true)
	writeJSON(w, http.StatusCreated, ticketResponse(result.Ticket))
}

// ListByProject handles GET /projects/{id}/tasks and /projects/{id}/incidents.
func (h *TicketsHandler) ListByProject(kind domain.TicketKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid project id")
			return
		}
		result, err := h.listByProject.Execute(r.Context(), ticket.ListByProjectInput{
			ProjectID: domain.NewProjectID(id),
			Kind:      kind,
		})
		if err != nil {
			writeDomainErr(w, h.log, err)
			return
		}
		items := make([]TicketResponse, 0, len(result.Tickets))
		for _, tk := range result.Tickets {
			items = append(items, ticketResponse(tk))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{strings.ToLower(string(kind)) + "s": items})
	}
}
