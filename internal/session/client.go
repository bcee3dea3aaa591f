package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/canvas/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1024 * 1024
)

// Client is the websocket connection driving one session.
type Client struct {
	hub      *Hub
	session  *Session
	conn     *websocket.Conn
	send     chan []byte
	Subject  string
	ClientID string
}

func NewClient(hub *Hub, s *Session, conn *websocket.Conn, subject string) *Client {
	return &Client{
		hub:      hub,
		session:  s,
		conn:     conn,
		send:     make(chan []byte, 256),
		Subject:  subject,
		ClientID: uuid.New().String(),
	}
}

// ServeBoard upgrades the request and runs an editing session for boardID
// until the connection closes. A board already being edited is refused
// with 409.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request, boardID, subject string, opts *websocket.AcceptOptions) {
	s, err := h.Open(r.Context(), boardID)
	if errors.Is(err, ErrBoardBusy) {
		http.Error(w, "board is being edited", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.Error("open session", "board", boardID, "error", err)
		http.Error(w, "cannot open board", http.StatusNotFound)
		return
	}
	defer h.Close(context.Background(), s)

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		h.logger.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, s, conn, subject)
	h.logger.Info("client connected", "board", boardID, "subject", subject, "client", client.ClientID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s.OnState(client.sendState)
	client.Send(&Message{Type: TypeWelcome, BoardID: boardID, ClientID: client.ClientID, Payload: mustJSON(WelcomePayload{
		BoardID:  boardID,
		ClientID: client.ClientID,
	})})
	seq, state := s.State()
	client.sendState(seq, state)

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func (c *Client) ReadPump(ctx context.Context) {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", "invalid message")
			continue
		}

		c.handleMessage(ctx, &msg)
	}
}

func (c *Client) handleMessage(ctx context.Context, msg *Message) {
	switch msg.Type {
	case TypeCommand:
		var cmd Command
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			c.sendError("", "invalid command payload")
			return
		}
		if err := c.session.Apply(cmd); err != nil {
			c.sendError(cmd.ID, err.Error())
		}
	case TypeSave:
		version, err := c.hub.Save(ctx, c.session)
		if err != nil {
			slog.Error("save failed", "board", c.session.boardID, "error", err)
			c.sendError("", "save failed")
			return
		}
		c.Send(&Message{Type: TypeSaved, BoardID: c.session.boardID, Payload: mustJSON(SavedPayload{Version: version})})
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", c.ClientID)
		c.sendError("", "unknown message type "+msg.Type)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

func (c *Client) sendState(seq int64, state engine.State) {
	c.Send(&Message{Type: TypeState, BoardID: c.session.boardID, Seq: seq, Payload: mustJSON(state)})
}

func (c *Client) sendError(commandID, message string) {
	c.Send(&Message{Type: TypeError, Payload: mustJSON(ErrorPayload{CommandID: commandID, Message: message})})
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal payload", "error", err)
		return nil
	}
	return data
}
