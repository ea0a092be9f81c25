package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/project"
	"github.com/openplanhq/trackd/internal/domain"
)

// ProjectsHandler handles project reads.
type ProjectsHandler struct {
	getProject  *project.GetProject
	listMembers *project.ListMembers
	log         zerolog.Logger
}

// NewProjectsHandler creates the handler.
func NewProjectsHandler(getProject *project.GetProject, listMembers *project.ListMembers, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{getProject: getProject, listMembers: listMembers, log: log}
}

// ProjectResponse is the JSON shape for a project.
type ProjectResponse struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func projectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID.String(),
		Key:       p.Key,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// MemberResponse is the JSON shape for a project member.
type MemberResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

// Get handles GET /projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid project id")
		return
	}
	result, err := h.getProject.Execute(r.Context(), project.GetProjectInput{
		ProjectID: domain.NewProjectID(id),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(result.Project))
}

// ListMembers handles GET /projects/{id}/members.
func (h *ProjectsHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid project id")
		return
	}
	result, err := h.listMembers.Execute(r.Context(), project.ListMembersInput{
		ProjectID: domain.NewProjectID(id),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	members := make([]MemberResponse, 0, len(result.Members))
	for _, m := range result.Members {
		resp := MemberResponse{
			UserID:   m.Membership.UserID.String(),
			Role:     m.Membership.Role,
			JoinedAt: m.Membership.JoinedAt.Format(time.RFC3339),
		}
		if m.User != nil {
			resp.Email = m.User.Email
			resp.Name = m.User.DisplayName
		}
		members = append(members, resp)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}
