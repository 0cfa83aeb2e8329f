package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingsvc/internal/app/dto"
)

func (h *Handler) StatsEvents(c *gin.Context) {
	counts, err := h.StatsSvc.EventCounts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.EventStatsResponse{Events: make([]dto.EventCount, 0, len(counts))}
	for _, s := range counts {
		resp.Events = append(resp.Events, dto.EventCount{
			EventName:  s.EventName,
			Count:      s.Count,
			LastSeenAt: s.LastSeenAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) StatsBus(c *gin.Context) {
	names := h.Bus.EventNames()

	resp := dto.BusStatsResponse{
		MaxListeners: h.Bus.MaxListeners(),
		Listeners:    make([]dto.BusListener, 0, len(names)),
		Observed:     []dto.EventGauge{},
	}
	for _, name := range names {
		resp.Listeners = append(resp.Listeners, dto.BusListener{
			EventName:     name,
			ListenerCount: h.Bus.ListenerCount(name),
		})
	}

	if h.Monitor != nil {
		for _, g := range h.Monitor.Snapshot() {
			resp.Observed = append(resp.Observed, dto.EventGauge{
				EventName: g.Name,
				Count:     g.Count,
				LastSeen:  g.LastSeen,
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
