package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/project"
	"github.com/openplanhq/trackd/internal/application/user"
)

// AdminHandler handles /admin/* (create project, create user). Requires
// X-Trackd-Admin-Secret.
type AdminHandler struct {
	createProject *project.CreateProject
	createUser    *user.CreateUser
	validate      *validator.Validate
	log           zerolog.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(createProject *project.CreateProject, createUser *user.CreateUser, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		createProject: createProject,
		createUser:    createUser,
		validate:      validator.New(),
		log:           log,
	}
}

// CreateProject handles POST /admin/projects. Body: { "name": "...", "key": "PROJ" }.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required,max=255"`
		Key  string `json:"key" validate:"required,max=10"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createProject.Execute(r.Context(), project.CreateProjectInput{
		Name: body.Name,
		Key:  body.Key,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(result.Project))
}

// CreateUser handles POST /admin/users. Body: { "email": "...", "name": "..." }.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
		Name  string `json:"name" validate:"max=255"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createUser.Execute(r.Context(), user.CreateUserInput{
		Email:       SanitizeEmail(body.Email),
		DisplayName: SanitizeName(body.Name),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    result.User.ID.String(),
		"email": result.User.Email,
		"name":  result.User.DisplayName,
	})
}
