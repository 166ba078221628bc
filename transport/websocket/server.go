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

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

var errSlowClient = errors.New("client send buffer is full")

type gameService interface {
	CreateGame(ctx context.Context, startingPlayer game.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, boardIndex, cellIndex int, player game.Player) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, msg *Message, sender *client) error

// Server serves the live game API. Every connection watches the games it
// created or touched and receives their updates.
type Server struct {
	logger      *slog.Logger
	gameService gameService
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc

	watchersMutex sync.RWMutex
	watchers      map[string]map[*client]struct{}
}

func New(logger *slog.Logger, gameService gameService) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameService: gameService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
		watchers: make(map[string]map[*client]struct{}),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameGet] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleResetGame
	server.handlers[actionGameDelete] = server.handleDeleteGame

	return server
}

type client struct {
	conn  *websocket.Conn
	send  chan []byte
	games map[string]struct{}
}

// ServeHTTP upgrades the connection and processes messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		games: make(map[string]struct{}),
	}

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := that.writePump(c); err != nil {
			log.Debug("writer stopped", "error", err)
			// unblocks the reader
			_ = conn.Close()
		}
	}()

	if err = that.handleMessages(r.Context(), c); err != nil {
		log.Debug("reader stopped", "error", err)
	}

	that.unwatchAll(c)
	close(c.send)
	<-done
	_ = conn.Close()

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(c, "", "Invalid message.")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, message.Action, "Unknown action.")
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// writePump owns all writes to the connection and pings it while idle.
func (that *Server) writePump(c *client) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errSlowClient
	}
}

func (that *Server) sendError(c *client, action, detail string) {
	if err := that.sendMessage(c, action, ResponsePayload{Error: detail}); err != nil {
		that.logger.Warn("failed to send error", "action", action, "error", err)
	}
}

func (that *Server) watch(c *client, gameID string) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	clients, ok := that.watchers[gameID]
	if !ok {
		clients = make(map[*client]struct{})
		that.watchers[gameID] = clients
	}

	clients[c] = struct{}{}
	c.games[gameID] = struct{}{}
}

func (that *Server) unwatchAll(c *client) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	for gameID := range c.games {
		delete(that.watchers[gameID], c)
		if len(that.watchers[gameID]) == 0 {
			delete(that.watchers, gameID)
		}
	}
}

// broadcast sends the payload to every watcher of the game.
func (that *Server) broadcast(gameID, action string, payload ResponsePayload) {
	log := that.logger.With("method", "broadcast", "gameID", gameID)

	that.watchersMutex.RLock()
	defer that.watchersMutex.RUnlock()

	for c := range that.watchers[gameID] {
		if err := that.sendMessage(c, action, payload); err != nil {
			log.Warn("failed to send game update", "error", err)
		}
	}
}

// forget drops all watchers of a deleted game.
func (that *Server) forget(gameID string) {
	that.watchersMutex.Lock()
	defer that.watchersMutex.Unlock()

	delete(that.watchers, gameID)
}
