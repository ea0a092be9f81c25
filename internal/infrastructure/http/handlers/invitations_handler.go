package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/invitation"
	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/http/middleware"
)

// InvitationsHandler handles /invitations/*.
type InvitationsHandler struct {
	create      *invitation.Create
	resend      *invitation.Resend
	getByToken  *invitation.GetByToken
	accept      *invitation.Accept
	decline     *invitation.Decline
	listPending *invitation.ListPending
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewInvitationsHandler creates the handler.
func NewInvitationsHandler(create *invitation.Create, resend *invitation.Resend, getByToken *invitation.GetByToken, accept *invitation.Accept, decline *invitation.Decline, listPending *invitation.ListPending, log zerolog.Logger) *InvitationsHandler {
	return &InvitationsHandler{
		create:      create,
		resend:      resend,
		getByToken:  getByToken,
		accept:      accept,
		decline:     decline,
		listPending: listPending,
		validate:    validator.New(),
		log:         log,
	}
}

// InvitationResponse is the JSON shape for an invitation. The token is only
// exposed on creation and token lookups; list endpoints omit it.
type InvitationResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status"`
	Token      string `json:"token,omitempty"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	AcceptedAt string `json:"accepted_at,omitempty"`
}

func invitationResponse(inv *domain.Invitation, includeToken bool) InvitationResponse {
	resp := InvitationResponse{
		ID:        inv.ID.String(),
		ProjectID: inv.ProjectID.String(),
		Email:     inv.Email,
		Name:      inv.DisplayName,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
	if includeToken {
		resp.Token = inv.Token
	}
	if !inv.ExpiresAt.IsZero() {
		resp.ExpiresAt = inv.ExpiresAt.Format(time.RFC3339)
	}
	if inv.AcceptedAt != nil {
		resp.AcceptedAt = inv.AcceptedAt.Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /invitations.
func (h *InvitationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID   string `json:"project_id" validate:"required,uuid"`
		Email       string `json:"email" validate:"required,email,max=254"`
		Name        string `json:"name" validate:"max=255"`
		InvitedByID string `json:"invited_by_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	projectID, _ := uuid.Parse(body.ProjectID)
	invitedByID, _ := uuid.Parse(body.InvitedByID)
	result, err := h.create.Execute(r.Context(), invitation.CreateInput{
		ProjectID:   domain.NewProjectID(projectID),
		Email:       SanitizeEmail(body.Email),
		DisplayName: SanitizeName(body.Name),
		InvitedByID: domain.NewUserID(invitedByID),
	})
	if err != nil {
		AuditLog(h.log, r, "invitation.create", body.ProjectID, "", false, err.Error())
		middleware.RecordInvitationEvent("create", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "invitation.create", body.ProjectID, result.Invitation.ID.String(), true, "")
	middleware.RecordInvitationEvent("create", true)
	writeJSON(w, http.StatusCreated, invitationResponse(result.Invitation, true))
}

// Resend handles POST /invitations/{id}/resend.
func (h *InvitationsHandler) Resend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid invitation id")
		return
	}
	result, err := h.resend.Execute(r.Context(), invitation.ResendInput{
		InvitationID: domain.NewInvitationID(id),
	})
	if err != nil {
		middleware.RecordInvitationEvent("resend", false)
		writeDomainErr(w, h.log, err)
		return
	}
	middleware.RecordInvitationEvent("resend", true)
	writeJSON(w, http.StatusOK, invitationResponse(result.Invitation, false))
}

// GetByToken handles GET /invitations/by-token?token=.
func (h *InvitationsHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	result, err := h.getByToken.Execute(r.Context(), invitation.GetByTokenInput{Token: token})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, invitationResponse(result.Invitation, true))
}

// Accept handles POST /invitations/accept.
func (h *InvitationsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token  string `json:"token" validate:"required,len=32"`
		UserID string `json:"user_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	userID, _ := uuid.Parse(body.UserID)
	result, err := h.accept.Execute(r.Context(), invitation.AcceptInput{
		Token:  body.Token,
		UserID: domain.NewUserID(userID),
	})
	if err != nil {
		AuditLog(h.log, r, "invitation.accept", "", "", false, err.Error())
		middleware.RecordInvitationEvent("accept", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "invitation.accept", result.Invitation.ProjectID.String(), result.Invitation.ID.String(), true, "")
	middleware.RecordInvitationEvent("accept", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invitation":     invitationResponse(result.Invitation, false),
		"member_created": result.MemberCreated,
	})
}

// Decline handles POST /invitations/decline.
func (h *InvitationsHandler) Decline(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InvitationID string `json:"invitation_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	id, _ := uuid.Parse(body.InvitationID)
	result, err := h.decline.Execute(r.Context(), invitation.DeclineInput{
		InvitationID: domain.NewInvitationID(id),
	})
	if err != nil {
		middleware.RecordInvitationEvent("decline", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "invitation.decline", result.Invitation.ProjectID.String(), result.Invitation.ID.String(), true, "")
	middleware.RecordInvitationEvent("decline", true)
	writeJSON(w, http.StatusOK, invitationResponse(result.Invitation, false))
}

// ListPending handles GET /invitations/pending?email=.
func (h *InvitationsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	email := SanitizeEmail(r.URL.Query().Get("email"))
	result, err := h.listPending.Execute(r.Context(), invitation.ListPendingInput{Email: email})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]InvitationResponse, 0, len(result.Invitations))
	for _, inv := range result.Invitations {
		items = append(items, invitationResponse(inv, false))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invitations": items})
}
