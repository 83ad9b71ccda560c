package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const errNoSession = "no active session, send session:new first"

// handleNewSession starts a fresh game for the connection, ending the previous one.
func (that *Server) handleNewSession(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewSession")

	if conn.sessionID != "" {
		if err := that.uSession.EndSession(ctx, conn.sessionID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
			log.Warn("failed to end previous session", "sessionID", conn.sessionID, "error", err)
		}

		conn.sessionID = ""
	}

	session, err := that.uSession.CreateSession(ctx)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new session")
	}

	conn.sessionID = session.ID

	return that.sendMessage(conn, msg.Action, newPayload(session))
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "sessionID", conn.sessionID)

	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, errNoSession)
	}

	row, col, err := decodeTurn(msg.Payload)
	if err != nil {
		log.Debug("invalid turn payload", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	result, err := that.uSession.MakeMove(ctx, conn.sessionID, row, col)
	if err != nil {
		return that.handleSessionError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, resultPayload(result))
}

func (that *Server) handleGameReset(ctx context.Context, conn *connection, msg *Message) error {
	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, errNoSession)
	}

	result, err := that.uSession.ResetSession(ctx, conn.sessionID)
	if err != nil {
		return that.handleSessionError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, resultPayload(result))
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	if conn.sessionID == "" {
		return that.sendErrorResponse(conn, msg.Action, errNoSession)
	}

	session, err := that.uSession.GetState(ctx, conn.sessionID)
	if err != nil {
		return that.handleSessionError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, newPayload(session))
}

func (that *Server) handleSessionError(conn *connection, action string, err error) error {
	log := that.logger.With("method", "handleSessionError", "sessionID", conn.sessionID)

	if errors.Is(err, apperror.ErrSessionNotFound) {
		conn.sessionID = ""
		return that.sendErrorResponse(conn, action, "session expired, start a new game")
	}

	log.Error("session operation failed", "action", action, "error", err)

	return that.sendErrorResponse(conn, action, fmt.Sprintf("failed to %s", action))
}

func resultPayload(result *usecase.MoveResult) Payload {
	payload := newPayload(result.Session)
	payload.Events = result.Events

	if result.Outcome.Kind != "" {
		outcome := result.Outcome
		payload.Outcome = &outcome

		if outcome.IsRejected() {
			payload.Error = outcome.ReasonCode()
		}
	}

	return payload
}
