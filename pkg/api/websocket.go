package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "new", "move", "state", "predict", "solution", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client. Each connection
// plays a single puzzle, created by the "new" message; the session is
// torn down when the connection closes.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
	session  *Session
}

// WebSocket handles WebSocket connections for interactive puzzle play.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		if c.session != nil {
			c.handlers.store.Delete(c.session.ID)
		}
		close(c.sendChan)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "new":
		c.handleNew(msg)
	case "move":
		c.handleMove(msg)
	case "state":
		c.handleState(msg)
	case "predict":
		c.handlePredict(msg)
	case "solution":
		c.handleSolution(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) handleNew(msg WSMessage) {
	var req NewPuzzleRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	p, err := buildPuzzle(&req)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	sess, err := c.handlers.store.Create(p)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}

	// One live puzzle per connection.
	if c.session != nil {
		c.handlers.store.Delete(c.session.ID)
	}
	c.session = sess

	var resp *PuzzleResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		resp = puzzleToResponse(sess.ID, p)
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) requireSession(id string) bool {
	if c.session == nil {
		c.sendChan <- WSResponse{Type: "error", ID: id, Error: "no puzzle: send a \"new\" message first"}
		return false
	}
	return true
}

func (c *WSClient) handleMove(msg WSMessage) {
	if !c.requireSession(msg.ID) {
		return
	}
	var req MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	if req.Notation == "" && req.Move == nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "notation or move is required"}
		return
	}

	var resp MoveResponse
	c.session.WithPuzzle(func(p *puzzle.Puzzle) {
		m := puzzle.Move{}
		if req.Notation != "" {
			parsed, err := puzzle.ParseMove(req.Notation, p.Size())
			if err != nil {
				resp = MoveResponse{OK: false, Message: err.Error(), State: p.StateString(), Solved: p.IsSolved()}
				return
			}
			m = parsed
		} else {
			m = *req.Move
		}
		ok, message := p.ApplyMove(m)
		resp = MoveResponse{OK: ok, Message: message, State: p.StateString(), Solved: p.IsSolved()}
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handleState(msg WSMessage) {
	if !c.requireSession(msg.ID) {
		return
	}
	var resp *PuzzleResponse
	c.session.WithPuzzle(func(p *puzzle.Puzzle) {
		resp = puzzleToResponse(c.session.ID, p)
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handlePredict(msg WSMessage) {
	if !c.requireSession(msg.ID) {
		return
	}
	var req PredictionRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	var resp PredictionResponse
	c.session.WithPuzzle(func(p *puzzle.Puzzle) {
		row, col, found := p.TilePosition(req.Tile)
		resp = PredictionResponse{
			Correct: p.ValidatePrediction(req.Tile, req.Claim),
			Found:   found,
			Row:     row,
			Col:     col,
		}
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handleSolution(msg WSMessage) {
	if !c.requireSession(msg.ID) {
		return
	}
	var resp SolutionResponse
	c.session.WithPuzzle(func(p *puzzle.Puzzle) {
		key := p.ShuffleKey()
		resp = SolutionResponse{
			SessionID:  c.session.ID,
			ShuffleKey: key,
			Solution:   puzzle.ReverseSequence(key),
		}
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}
