package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/render"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

type uSession interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetState(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, row, col int) (*usecase.MoveResult, error)
	ResetSession(ctx context.Context, id string) (*usecase.MoveResult, error)
	EndSession(ctx context.Context, id string) error
}

type Handlers interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	ResetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger   *slog.Logger
	sessions uSession
}

func NewHandlers(logger *slog.Logger, sessions uSession) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest_handlers"),
		sessions: sessions,
	}
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type sessionResponse struct {
	Session entity.State       `json:"session"`
	Outcome *tictactoe.Outcome `json:"outcome,omitempty"`
	Events  []tictactoe.Event  `json:"events,omitempty"`
	Banner  string             `json:"banner,omitempty"`
	Overlay string             `json:"overlay,omitempty"`
}

type errorResponse struct {
	Error   string        `json:"error"`
	Session *entity.State `json:"session,omitempty"`
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var request moveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_json"})
		return
	}

	if request.Row == nil || request.Col == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row_and_col_required"})
		return
	}

	result, err := that.sessions.MakeMove(r.Context(), chi.URLParam(r, "id"), *request.Row, *request.Col)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	if result.Outcome.IsRejected() {
		state := result.Session.State()
		writeJSON(w, rejectionStatus(result.Outcome), errorResponse{Error: result.Outcome.ReasonCode(), Session: &state})
		return
	}

	writeJSON(w, http.StatusOK, newResultResponse(result))
}

func (that *handlers) ResetSession(w http.ResponseWriter, r *http.Request) {
	result, err := that.sessions.ResetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ResetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, newResultResponse(result))
}

func (that *handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session_not_found"})
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
}

func rejectionStatus(outcome tictactoe.Outcome) int {
	if errors.Is(outcome.Reason, apperror.ErrOutOfRange) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusConflict
}

func newSessionResponse(session *entity.Session) sessionResponse {
	state := session.State()

	response := sessionResponse{
		Session: state,
		Overlay: render.GameOverText(state),
	}

	if !session.IsTerminal() {
		response.Banner = render.TurnBanner(state.Active)
	}

	return response
}

func newResultResponse(result *usecase.MoveResult) sessionResponse {
	response := newSessionResponse(result.Session)
	response.Events = result.Events

	if result.Outcome.Kind != "" {
		outcome := result.Outcome
		response.Outcome = &outcome
	}

	return response
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
