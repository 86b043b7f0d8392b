package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/lagvtt/backend/internal/bplan"
	"github.com/lagvtt/backend/internal/models"
)

// WebSocket message types for the live preview protocol
const (
	// Client -> Server messages
	MsgTypePlanUpdate   = "plan:update"
	MsgTypeScriptImport = "script:import"
	MsgTypePing         = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypePreview   = "preview"
	MsgTypePlan      = "plan"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WebSocket message structure
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Script import payload
type ScriptImportPayload struct {
	Text string `json:"text"`
}

// Preview payload sent back for every plan update
type PreviewPayload struct {
	URL   string   `json:"url"`
	Uvar  string   `json:"uvar"`
	BPlan []string `json:"bplan"`
}

// WebSocket error response
type WSErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WebSocketHandler re-renders plans as the editor changes them
type WebSocketHandler struct {
	upgrader       websocket.Upgrader
	render         RenderOptions
	maxMessageSize int64
}

// NewWebSocketHandler creates a new live preview handler. maxMessageKB of
// zero or less leaves the read limit unset.
func NewWebSocketHandler(render RenderOptions, maxMessageKB int) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		render:         render,
		maxMessageSize: int64(maxMessageKB) * 1024,
	}
}

// HandleWebSocket upgrades HTTP connection to WebSocket and serves previews
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	if wsh.maxMessageSize > 0 {
		ws.SetReadLimit(wsh.maxMessageSize)
	}

	fmt.Println("[WebSocket] Client connected for preview")

	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeConnected,
		Timestamp: time.Now().UnixMilli(),
	})

	// Main message loop
	for {
		var msg WSMessage
		err := ws.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			wsh.sendMessage(ws, WSMessage{Type: MsgTypePong, ID: msg.ID, Timestamp: time.Now().UnixMilli()})
		case MsgTypePlanUpdate:
			wsh.handlePlanUpdate(ws, msg)
		case MsgTypeScriptImport:
			wsh.handleScriptImport(ws, msg)
		default:
			wsh.sendError(ws, msg.ID, "Unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}

	fmt.Println("[WebSocket] Client disconnected")
	return nil
}

// handlePlanUpdate renders the plan as a map URL and both script dialects
func (wsh *WebSocketHandler) handlePlanUpdate(ws *websocket.Conn, msg WSMessage) {
	var plan models.BattlePlan
	if err := json.Unmarshal(msg.Payload, &plan); err != nil {
		wsh.sendError(ws, msg.ID, "Invalid plan payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}

	p := bplan.Normalize(&plan)
	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypePreview,
		ID:        msg.ID,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(PreviewPayload{
			URL:   bplan.OTFBMURL(p, bplan.URLOptions{Scale: wsh.render.Scale}),
			Uvar:  bplan.ToUvar(p),
			BPlan: bplan.ToBPlan(p),
		}),
	})
}

// handleScriptImport decodes a pasted script and sends back the plan
func (wsh *WebSocketHandler) handleScriptImport(ws *websocket.Conn, msg WSMessage) {
	var payload ScriptImportPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		wsh.sendError(ws, msg.ID, "Invalid import payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}

	plan, err := bplan.Decode(payload.Text)
	if err != nil {
		wsh.sendError(ws, msg.ID, err.Error(), "MALFORMED_SCRIPT")
		return
	}

	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypePlan,
		ID:        msg.ID,
		Timestamp: time.Now().UnixMilli(),
		Payload:   mustJSON(plan),
	})
}

func (wsh *WebSocketHandler) sendMessage(ws *websocket.Conn, msg WSMessage) {
	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func (wsh *WebSocketHandler) sendError(ws *websocket.Conn, id, message, code string) {
	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeError,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(WSErrorResponse{
			Type:    MsgTypeError,
			Message: message,
			Code:    code,
		}),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
