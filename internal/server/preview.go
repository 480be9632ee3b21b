package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/agentbrief/internal/assemble"
	"github.com/abhisek/agentbrief/internal/decision"
)

const (
	previewWriteWait = 10 * time.Second
	previewPongWait  = 60 * time.Second
	previewPingEvery = (previewPongWait * 9) / 10
)

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// previewMessage is sent for every inbound answers message.
type previewMessage struct {
	Ready    bool             `json:"ready"`
	Result   *decision.Result `json:"result,omitempty"`
	Document string           `json:"document,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// handlePreviewWS reads answer sets and replies with a partial derivation for
// each one. The socket never enhances; previews stay deterministic.
func (h *Handler) handlePreviewWS(w http.ResponseWriter, r *http.Request) {
	conn, err := previewUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("preview upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(previewPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(previewPongWait))
	})
	conn.SetReadLimit(maxBodyBytes)

	writeCh := make(chan previewMessage, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(previewPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(previewWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(previewWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("preview connection closed", zap.Error(err))
			}
			cancel()
			<-writerDone
			return
		}

		out := h.preview(data)
		select {
		case writeCh <- out:
		case <-writerDone:
			return
		}
	}
}

func (h *Handler) preview(data []byte) previewMessage {
	a, err := decodeAnswers(data)
	if err != nil {
		return previewMessage{Error: err.Error()}
	}
	res := decision.DerivePartial(a)
	if res == nil {
		return previewMessage{Ready: false}
	}
	doc := assemble.Assemble(a, *res, assemble.Options{Now: h.now()})
	return previewMessage{Ready: true, Result: res, Document: doc.String()}
}
