package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	requestTimeout = 5 * time.Second
)

type uSession interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetState(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, row, col int) (*usecase.MoveResult, error)
	ResetSession(ctx context.Context, id string) (*usecase.MoveResult, error)
	EndSession(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	uSession uSession
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// New builds the websocket server. An empty allowedOrigin only accepts pages served from the same host.
func New(logger *slog.Logger, uSession uSession, allowedOrigin string) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		uSession: uSession,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	if allowedOrigin != "" {
		server.upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == allowedOrigin
		}
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameState] = server.handleGameState

	return server
}

// Handler upgrades requests to websocket connections. Open connections are closed once ctx is done.
func (that *Server) Handler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	}
}

func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	socket, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{socket: socket}
	done := make(chan struct{})

	defer func() {
		close(done)
		that.closeConnection(ctx, conn)
	}()

	go that.keepAlive(ctx, conn, done)

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.socket.SetReadLimit(maxMessageSize)
	if err := conn.socket.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	conn.socket.SetPongHandler(func(string) error {
		return conn.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.socket.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		err = handler(reqCtx, conn, &message)
		cancel()

		if err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) keepAlive(ctx context.Context, conn *connection, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.socket.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = conn.socket.Close()
			return
		case <-ticker.C:
			if err := conn.socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// closeConnection ends the session owned by the connection so a reload starts a fresh game.
func (that *Server) closeConnection(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "closeConnection")

	if err := conn.socket.Close(); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		log.Debug("failed to close socket", "error", err)
	}

	if conn.sessionID == "" {
		return
	}

	endCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requestTimeout)
	defer cancel()

	if err := that.uSession.EndSession(endCtx, conn.sessionID); err != nil {
		log.Warn("failed to end session", "sessionID", conn.sessionID, "error", err)
		return
	}

	log.Info("player disconnected", "sessionID", conn.sessionID)
}

// connection is owned by a single read loop; only keepAlive touches the socket concurrently, through WriteControl.
type connection struct {
	socket    *websocket.Conn
	sessionID string
}

func (that *Server) sendMessage(conn *connection, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.socket.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.socket.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
