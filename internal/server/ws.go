package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/huangsam/doralens/internal/contract"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// readLimit caps the size of a client request frame.
	readLimit = 4096
)

// Dashboard message types.
const (
	CurrentMessage = "current"
	TrendsMessage  = "trends"
	ErrorMessage   = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// DashboardRequest is a client message on the dashboard socket.
type DashboardRequest struct {
	Type  string `json:"type"`
	Days  int    `json:"days,omitempty"`
	Weeks int    `json:"weeks,omitempty"`
}

// DashboardResponse is a server message on the dashboard socket.
type DashboardResponse struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
	Data       any    `json:"data"`
}

// handleDashboard upgrades to a WebSocket and answers requests until the
// client goes away. Only the answer to the newest request is ever sent.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}
	log := s.requestLog(r)

	var (
		gen Generation
		wg  sync.WaitGroup
	)
	defer conn.Close()
	defer wg.Wait()
	defer gen.Stop()

	conn.SetReadLimit(readLimit)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("Dashboard connection closed")
			}
			return
		}

		var req DashboardRequest
		decodeErr := json.Unmarshal(raw, &req)

		ctx, token := gen.Begin(r.Context())
		wg.Go(func() {
			// A newer message may already have arrived.
			if !gen.IsCurrent(token) {
				log.WithField("generation", token).Debug("Skipped superseded dashboard request")
				return
			}
			resp := s.answer(ctx, req, decodeErr)
			resp.Generation = token
			applied := gen.Apply(token, func() {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(resp); err != nil {
					log.WithError(err).Debug("Failed to write dashboard message")
				}
			})
			if !applied {
				log.WithField("generation", token).Debug("Dropped stale dashboard response")
			}
		})
	}
}

// answer computes the response to one dashboard request.
func (s *Server) answer(ctx context.Context, req DashboardRequest, decodeErr error) DashboardResponse {
	if decodeErr != nil {
		return DashboardResponse{Type: ErrorMessage, Data: "invalid request"}
	}

	switch req.Type {
	case CurrentMessage:
		if req.Days < 0 || req.Days > contract.MaxDays {
			return DashboardResponse{Type: ErrorMessage, Data: fmt.Sprintf("days must be between 1 and %d", contract.MaxDays)}
		}
		result, err := s.current(ctx, req.Days)
		if err != nil {
			return s.fetchFailed(ctx, err)
		}
		return DashboardResponse{Type: CurrentMessage, Data: result}
	case TrendsMessage:
		if req.Weeks < 0 || req.Weeks > contract.MaxWeeks {
			return DashboardResponse{Type: ErrorMessage, Data: fmt.Sprintf("weeks must be between 1 and %d", contract.MaxWeeks)}
		}
		result, err := s.trends(ctx, req.Weeks)
		if err != nil {
			return s.fetchFailed(ctx, err)
		}
		return DashboardResponse{Type: TrendsMessage, Data: result}
	default:
		return DashboardResponse{Type: ErrorMessage, Data: fmt.Sprintf("unknown request type %q", req.Type)}
	}
}

// fetchFailed logs the upstream error and returns the fixed client message.
func (s *Server) fetchFailed(ctx context.Context, err error) DashboardResponse {
	if ctx.Err() == nil {
		s.log.WithError(err).Error("Failed to compute dashboard data")
	}
	return DashboardResponse{Type: ErrorMessage, Data: FetchErrorMessage}
}
