package api

import (
	"encoding/json"
	"net/http"
	"time"

	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/models"

	"github.com/gorilla/mux"
)

type createSessionResponse struct {
	SessionID string         `json:"sessionId"`
	Greeting  models.Message `json:"greeting"`
}

type submitMessageRequest struct {
	Text string `json:"text"`
}

type submitMessageResponse struct {
	MessageID string          `json:"messageId"`
	Reply     string          `json:"reply"`
	Actions   []models.Action `json:"actions"`
	CreatedAt time.Time       `json:"createdAt"`
}

type listMessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

type dispatchActionRequest struct {
	Kind string `json:"kind"`
}

type dispatchActionResponse struct {
	Target string `json:"target"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, greeting := s.manager.Start()
	s.writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: id,
		Greeting:  greeting,
	})
}

func (s *Server) submitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if !s.limiters.Allow(sessionID) {
		s.errs.WriteHTTPError(w, errors.NewRateLimitedError(sessionID))
		return
	}

	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errs.WriteHTTPError(w, errors.NewInvalidRequestError("body must be JSON with a text field"))
		return
	}

	reply, err := s.manager.Submit(r.Context(), sessionID, req.Text, s.isAuthenticated(r))
	if err != nil {
		s.errs.WriteHTTPError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, submitMessageResponse{
		MessageID: reply.ID,
		Reply:     reply.Text,
		Actions:   reply.Actions,
		CreatedAt: reply.CreatedAt,
	})
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	messages, err := s.manager.Transcript(sessionID)
	if err != nil {
		s.errs.WriteHTTPError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listMessagesResponse{Messages: messages})
}

func (s *Server) dispatchAction(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req dispatchActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errs.WriteHTTPError(w, errors.NewInvalidRequestError("body must be JSON with a kind field"))
		return
	}

	target, err := s.manager.Dispatch(r.Context(), sessionID, models.ActionKind(req.Kind))
	if err != nil {
		s.errs.WriteHTTPError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dispatchActionResponse{Target: target})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.manager.End(r.Context(), sessionID); err != nil {
		s.errs.WriteHTTPError(w, err)
		return
	}
	s.limiters.Forget(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("response encode failed", nil)
	}
}
