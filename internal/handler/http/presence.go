package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/handler/http/response"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/presence"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/sse"
)

type PresenceHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
	Heartbeat(w http.ResponseWriter, r *http.Request)
	TabClosing(w http.ResponseWriter, r *http.Request)
	ForceLogoutSweep(w http.ResponseWriter, r *http.Request)
}

// Sweeper runs the force-logout sweep on demand; the cron job shares the
// same implementation.
type Sweeper interface {
	SweepNow(ctx context.Context) error
}

type presenceHandlerImpl struct {
	hub     *sse.Hub
	tracker *presence.Tracker
	sweeper Sweeper
}

func NewPresenceHandler(hub *sse.Hub, tracker *presence.Tracker, sweeper Sweeper) PresenceHandler {
	return &presenceHandlerImpl{
		hub:     hub,
		tracker: tracker,
		sweeper: sweeper,
	}
}

type presenceRequest struct {
	EmployeeID string `json:"employeeId"`
}

// Stream opens the live presence feed. The connection itself is the liveness
// signal: registering it cancels any pending disconnect timer, and dropping
// it starts one.
func (h *presenceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		response.BadRequest(w, "employeeId query parameter is required", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	h.tracker.Connect(employeeID)
	defer h.tracker.Disconnect(employeeID)

	slog.Debug("Presence stream opened", "employee_id", employeeID, "streams", h.hub.SubscriberCount(employeeID))

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employeeId\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// Heartbeat implements PresenceHandler.
func (h *presenceHandlerImpl) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req presenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmployeeID == "" {
		response.BadRequest(w, "employeeId is required", nil)
		return
	}

	h.tracker.Heartbeat(req.EmployeeID)
	response.Success(w, map[string]string{"status": "alive"})
}

// TabClosing implements PresenceHandler: the deliberate-exit fast path that
// reconciles immediately instead of waiting out the grace period.
func (h *presenceHandlerImpl) TabClosing(w http.ResponseWriter, r *http.Request) {
	var req presenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmployeeID == "" {
		response.BadRequest(w, "employeeId is required", nil)
		return
	}

	if err := h.tracker.TabClosing(r.Context(), req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session closed", nil)
}

// ForceLogoutSweep implements PresenceHandler: the manual trigger for the
// end-of-day sweep.
func (h *presenceHandlerImpl) ForceLogoutSweep(w http.ResponseWriter, r *http.Request) {
	if err := h.sweeper.SweepNow(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Force-logout sweep completed", nil)
}
