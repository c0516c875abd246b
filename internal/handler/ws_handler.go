package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/haneulsoft/timetable-backend/internal/repository"
	"github.com/haneulsoft/timetable-backend/internal/service"
	ws "github.com/haneulsoft/timetable-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams schedule snapshots to planner clients: one on
// connect, then one per selection mutation, fanned out via Redis Pub/Sub
// so every open tab of the planner stays in sync.
type WSHandler struct {
	selections     *repository.SelectionRepository
	plannerService *service.PlannerService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

func NewWSHandler(selections *repository.SelectionRepository, plannerService *service.PlannerService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		selections:     selections,
		plannerService: plannerService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// ScheduleStream godoc
// WS /ws/v1/planners/:planner_id/stream
func (h *WSHandler) ScheduleStream(c *gin.Context) {
	plannerID := c.Param("planner_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("planner_id", plannerID).Logger()
	ctx := c.Request.Context()

	// Initial snapshot so late joiners don't wait for the next mutation.
	view, err := h.plannerService.Schedule(ctx, plannerID)
	if err != nil {
		ws.WriteError(conn, "schedule unavailable")
		return
	}
	snapshot, err := json.Marshal(view)
	if err != nil {
		ws.WriteError(conn, "schedule unavailable")
		return
	}
	if err := ws.WriteTyped(conn, ws.ScheduleEvent{Event: ws.EventSchedule, Schedule: snapshot}); err != nil {
		return
	}

	sub := h.selections.SubscribeSchedule(ctx, plannerID)
	defer sub.Close()

	wsLog.Info().Msg("Planner stream connected")

	// Reader goroutine: answers pings and signals when the client goes
	// away so the forward loop below can stop.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			event := ws.ScheduleEvent{
				Event:    ws.EventSchedule,
				Schedule: json.RawMessage(msg.Payload),
			}
			if err := ws.WriteTyped(conn, event); err != nil {
				wsLog.Debug().Err(err).Msg("Stream write failed")
				return
			}
		}
	}
}
