package handlers

import (
	"net/http"
	"time"

	"camstore-backend/schedule"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Clock schedule.Clock
}

// Preview evaluates an ad-hoc window so the dashboard can show what a
// schedule will do before it is saved. "at" (RFC3339) overrides the current
// time and is read in the store's zone.
func (h *ScheduleHandler) Preview(c *gin.Context) {
	var form struct {
		scheduleForm
		At string `form:"at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	now := h.Clock.Now()
	if form.At != "" {
		at, _ := time.Parse(time.RFC3339, form.At)
		now = at.In(now.Location())
	}

	w := form.toSchedule().ScheduleWindow()
	c.JSON(http.StatusOK, gin.H{
		"at":     now.Format(time.RFC3339),
		"zone":   now.Location().String(),
		"result": schedule.Evaluate(w, now),
	})
}
