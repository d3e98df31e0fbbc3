package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	DB      *gorm.DB
	Pollers map[string]PollerStatus
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	pollers := gin.H{}
	for name, p := range h.Pollers {
		entry := gin.H{
			"loading":  p.Loading(),
			"interval": p.Interval().String(),
		}
		if err := p.LastError(); err != nil {
			entry["last_error"] = err.Error()
		}
		pollers[name] = entry
	}

	c.JSON(code, gin.H{"status": status, "pollers": pollers})
}
