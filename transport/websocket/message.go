package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	actionState   = "game:state"
	actionTurn    = "game:turn"
	actionJump    = "game:jump"
	actionRestart = "game:restart"
	actionUpdate  = "game:update"
	actionError   = "error"

	writeTimeout = 5 * time.Second
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload of game:turn and game:jump.
type Request struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`
}

type Payload struct {
	Game  *entity.GameView `json:"game,omitempty"`
	Error string           `json:"error,omitempty"`
}

// client serializes writes to one connection.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
