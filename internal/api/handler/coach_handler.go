package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-dashboard/internal/api/validation"
	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/service"
	"github.com/blaisecz/sleep-dashboard/pkg/problem"
)

// maxJSONBody bounds coach request bodies.
const maxJSONBody = 64 << 10

type CoachHandler struct {
	service service.CoachService
}

func NewCoachHandler(service service.CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

// GetGreeting handles GET /v1/coach/messages/greeting
// @Summary Get the coach greeting
// @Tags coach
// @Produce json
// @Success 200 {object} domain.ChatMessage "Opening coach message"
// @Router /coach/messages/greeting [get]
func (h *CoachHandler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Greeting())
}

// ListMessages handles GET /v1/coach/messages
// @Summary List the conversation
// @Description Return the coach conversation, oldest first, starting with the greeting.
// @Tags coach
// @Produce json
// @Success 200 {array} domain.ChatMessage "Conversation"
// @Router /coach/messages [get]
func (h *CoachHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Messages())
}

// PostMessage handles POST /v1/coach/messages
// @Summary Ask the coach
// @Description Ask the sleep coach a question. Answers are grounded on the current report when one exists; without an LLM the answer comes from scripted topics (deep sleep, REM).
// @Tags coach
// @Accept json
// @Produce json
// @Param body body domain.CoachMessageRequest true "Question"
// @Success 200 {object} domain.CoachReply "Coach reply"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /coach/messages [post]
func (h *CoachHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.CoachMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	reply, err := h.service.Reply(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest(err.Error()).Write(w)
			return
		}
		problem.InternalError("Failed to generate coach reply").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// PostFeedback handles POST /v1/coach/feedback
// @Summary Rate a coach reply
// @Description Submit a rating and optional comment for a previous coach reply, identified by its trace ID.
// @Tags coach
// @Accept json
// @Param body body domain.CoachFeedbackRequest true "Feedback"
// @Success 204 "Feedback recorded"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /coach/feedback [post]
func (h *CoachHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req domain.CoachFeedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.service.Feedback(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest(err.Error()).Write(w)
			return
		}
		problem.InternalError("Failed to record feedback").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDiagnosis handles GET /v1/coach/diagnosis
// @Summary Get the coach diagnosis
// @Tags coach
// @Produce json
// @Success 200 {object} domain.Diagnosis "Diagnosis card"
// @Router /coach/diagnosis [get]
func (h *CoachHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Diagnosis())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
