package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// easternZone is US Eastern standard time without daylight saving
var easternZone = time.FixedZone("EST", -5*60*60)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// SystemHandler serves the public utility endpoints
type SystemHandler struct {
	db    *gorm.DB
	rdb   *redis.Client
	build BuildInfo
	now   service.Clock
}

// NewSystemHandler creates a new SystemHandler. rdb may be nil.
func NewSystemHandler(db *gorm.DB, rdb *redis.Client, build BuildInfo, now service.Clock) *SystemHandler {
	return &SystemHandler{
		db:    db,
		rdb:   rdb,
		build: build,
		now:   now,
	}
}

// TimeResponse carries a formatted instant
type TimeResponse struct {
	CurrentTime string `json:"current_time"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	BuildInfo
	Time int64 `json:"time"`
}

// TimeUTC returns the current time in UTC
// GET /time/UTC
func (h *SystemHandler) TimeUTC(c *gin.Context) {
	response.OK(c, TimeResponse{CurrentTime: models.FormatTimestamp(h.now().UTC())})
}

// TimeEastern returns the current time at a fixed UTC-05:00 offset
// GET /time/eastern
func (h *SystemHandler) TimeEastern(c *gin.Context) {
	response.OK(c, TimeResponse{CurrentTime: models.FormatTimestamp(h.now().In(easternZone))})
}

// Test answers with a fixed message
// GET /test
func (h *SystemHandler) Test(c *gin.Context) {
	response.Success(c, "Test endpoint is working!")
}

// Health reports database and redis reachability
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Redis:     "disabled",
		BuildInfo: h.build,
		Time:      h.now().Unix(),
	}
	status := http.StatusOK

	if err := h.pingDatabase(ctx); err != nil {
		_ = c.Error(err)
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.rdb != nil {
		resp.Redis = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			_ = c.Error(err)
			resp.Status = "degraded"
			resp.Redis = "unavailable"
		}
	}

	c.JSON(status, resp)
}

func (h *SystemHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// RegisterRoutes registers public routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/time/UTC", h.TimeUTC)
	rg.GET("/time/eastern", h.TimeEastern)
	rg.GET("/test", h.Test)
	rg.GET("/health", h.Health)
}
