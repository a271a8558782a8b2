package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamAssessments pushes high-severity assessments to the client as
// server-sent events until the client disconnects or the broadcaster shuts
// down.
func (h *Handler) streamAssessments(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "streaming is not enabled"})
		return
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	h.metrics.StreamClients.Inc()
	defer h.metrics.StreamClients.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(gin.H{
				"id":         record.ID,
				"name":       record.Name,
				"source":     record.Source,
				"severity":   string(record.Severity),
				"yield_tons": record.ExplosiveYieldTons,
				"latitude":   record.Latitude,
				"longitude":  record.Longitude,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: assessment\ndata: %s\n\n", payload)
			c.Writer.Flush()
		}
	}
}
