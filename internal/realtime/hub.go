// Package realtime delivers bus events to websocket clients: the welcome
// monitor, the check-in terminals and the admin dashboard.
package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"eventgate/internal/bus"
	"eventgate/internal/models/response_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

const clientBuffer = 256
const dedupeWindow = 4096

type Hub struct {
	events *bus.Bus
	stats  services.DashboardServiceInterface
}

func NewHub(events *bus.Bus, stats services.DashboardServiceInterface) *Hub {
	return &Hub{
		events: events,
		stats:  stats,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type message struct {
	Type  string                      `json:"type"`
	Stats *response_models.EventStats `json:"stats,omitempty"`
	Event *bus.Event                  `json:"event,omitempty"`
}

// ServeWS upgrades the connection and streams events scoped to one event id.
// Each connection owns its own subscription and its own de-duplication state;
// the stats snapshot sent on connect is how a reconnecting monitor recovers
// anything it missed during the gap.
func (h *Hub) ServeWS(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: websocket upgrade error: %v", err)
		return
	}

	snapshot, err := h.stats.EventStats(c.Request.Context(), eventID)
	if err != nil {
		log.Printf("realtime: failed to load snapshot: %v", err)
		conn.Close()
		return
	}

	sub := h.events.Subscribe(eventID.String(), clientBuffer)
	seen := bus.NewDedupe(dedupeWindow)
	for _, r := range snapshot.RecentCheckins {
		seen.Seen(bus.TypeAttendantCheckedIn, r.AttendantID)
	}

	// writer
	go func() {
		defer conn.Close()

		if err := conn.WriteJSON(message{Type: "snapshot", Stats: &snapshot}); err != nil {
			return
		}

		for ev := range sub.C {
			if seen.Seen(ev.Type, ev.Attendant.ID) {
				continue
			}
			event := ev
			if err := conn.WriteJSON(message{Type: "event", Event: &event}); err != nil {
				return
			}
		}
	}()

	// reader (just consume pings/close)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	sub.Cancel()
}
