package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	mongo   *mongo.Client
	started time.Time
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{mongo: client, started: time.Now()}
}

// Health handles GET /health: store reachability plus basic system stats.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		status = "degraded: " + err.Error()
		code = http.StatusInternalServerError
	}

	system := gin.H{}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory_used_percent"] = vm.UsedPercent
	}
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		system["cpu_percent"] = percentages[0]
	}

	c.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(h.started).String(),
		"system": system,
	})
}
