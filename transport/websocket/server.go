package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	View() entity.GameView

	MakeTurn(ctx context.Context, cell int) (entity.GameState, error)
	JumpTo(ctx context.Context, step int) (entity.GameState, error)
	Restart(ctx context.Context) (entity.GameState, error)
}

type handlerFunc func(ctx context.Context, message *Message) (string, error)

type Server struct {
	logger   *slog.Logger
	game     gameManager
	upgrader websocket.Upgrader
	router   chi.Router

	clientsMutex sync.RWMutex
	clients      map[string]*client

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		router: chi.NewRouter(),

		clients:  make(map[string]*client),
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionRestart] = server.handleRestart

	server.router.Get("/ws", server.upgradeToWebSocket)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}

		that.closeAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Broadcast - sends the game to every connected client as game:update.
func (that *Server) Broadcast(game entity.GameView) {
	log := that.logger.With("method", "Broadcast")

	that.clientsMutex.RLock()
	clients := make([]*client, 0, len(that.clients))
	for _, c := range that.clients {
		clients = append(clients, c)
	}
	that.clientsMutex.RUnlock()

	for _, c := range clients {
		if err := c.send(actionUpdate, Payload{Game: &game}); err != nil {
			log.Warn("failed to send game update", "client", c.id, "error", err)
		}
	}
}

func (that *Server) upgradeToWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}

	that.clientsMutex.Lock()
	that.clients[c.id] = c
	that.clientsMutex.Unlock()

	log.Info("WebSocket connection established", "client", c.id)

	that.handleMessages(r.Context(), c)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "client", c.id)

	defer that.disconnect(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.reply(c, actionError, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.reply(c, actionError, fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		errorMsg, err := handler(ctx, &message)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}

		that.reply(c, message.Action, errorMsg)
	}
}

func (that *Server) reply(c *client, action, errorMsg string) {
	game := that.game.View()

	if err := c.send(action, Payload{Game: &game, Error: errorMsg}); err != nil {
		that.logger.Warn("failed to send response", "client", c.id, "action", action, "error", err)
	}
}

func (that *Server) disconnect(c *client) {
	that.clientsMutex.Lock()
	delete(that.clients, c.id)
	that.clientsMutex.Unlock()

	if err := c.conn.Close(); err != nil {
		that.logger.Debug("failed to close connection", "client", c.id, "error", err)
	}

	that.logger.Info("client disconnected", "client", c.id)
}

func (that *Server) closeAll() {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	for _, c := range that.clients {
		_ = c.conn.Close()
	}
}
