package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ganot/timecard/internal/domain/timecard"
	"github.com/ganot/timecard/internal/repository"
)

// The fixed message clients see on any optimistic concurrency failure.
const versionConflictMessage = "Version conflict. Please retry."

// TimecardService is the application surface the HTTP layer dispatches to.
type TimecardService interface {
	CreateOrUpdateDraft(ctx context.Context, employeeID string, weekStart timecard.Date, req timecard.DraftRequest) error
	Submit(ctx context.Context, employeeID string, weekStart timecard.Date) error
	Approve(ctx context.Context, employeeID string, weekStart timecard.Date) error
	List(ctx context.Context) ([]*timecard.Timecard, error)
}

// Server wires HTTP handlers.
type Server struct {
	timecards TimecardService
	logger    *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(timecards TimecardService, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))

	srv := &Server{timecards: timecards, logger: logger}

	r.Route("/api/timecards", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Post("/{employeeID}/{weekStart}", srv.handleCreateOrUpdateDraft)
		r.Post("/{employeeID}/{weekStart}/submit", srv.handleSubmit)
		r.Post("/{employeeID}/{weekStart}/approve", srv.handleApprove)
	})
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCreateOrUpdateDraft(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	weekStart, err := timecard.ParseDate(chi.URLParam(r, "weekStart"))
	if err != nil {
		s.writeValidation(w, "weekStart must be a date in YYYY-MM-DD form")
		return
	}

	var req timecard.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeValidation(w, "malformed request body")
		return
	}

	if err := s.timecards.CreateOrUpdateDraft(r.Context(), employeeID, weekStart, req); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.timecards.Submit)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.timecards.Approve)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, string, timecard.Date) error) {
	employeeID := chi.URLParam(r, "employeeID")
	weekStart, err := timecard.ParseDate(chi.URLParam(r, "weekStart"))
	if err != nil {
		s.writeValidation(w, "weekStart must be a date in YYYY-MM-DD form")
		return
	}

	if err := op(r.Context(), employeeID, weekStart); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	cards, err := s.timecards.List(r.Context())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	if cards == nil {
		cards = []*timecard.Timecard{}
	}
	s.writeJSON(w, http.StatusOK, cards)
}

type errorBody struct {
	Error string `json:"error"`
}

type validationBody struct {
	Errors []string `json:"errors"`
}

// writeServiceError is the single place service errors become HTTP
// responses.
func (s *Server) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *timecard.ValidationError
	switch {
	case errors.As(err, &vErr):
		s.writeJSON(w, http.StatusBadRequest, validationBody{Errors: vErr.Messages})
	case errors.Is(err, timecard.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, timecard.ErrInvalidState):
		s.writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, repository.ErrConflict):
		s.writeJSON(w, http.StatusConflict, errorBody{Error: versionConflictMessage})
	default:
		s.logger.ErrorContext(ctx, "request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func (s *Server) writeValidation(w http.ResponseWriter, messages ...string) {
	s.writeJSON(w, http.StatusBadRequest, validationBody{Errors: messages})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
