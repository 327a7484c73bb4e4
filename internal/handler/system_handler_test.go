package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/database/dbtest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSystemRouter(t *testing.T, now time.Time) *gin.Engine {
	h := NewSystemHandler(dbtest.Open(t), nil, BuildInfo{Version: "v1", Commit: "abc", BuildTime: "today"},
		func() time.Time { return now })

	router := gin.New()
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func TestSystemHandler_Time(t *testing.T) {
	now := time.Date(2024, 3, 10, 4, 30, 0, 123456000, time.UTC)
	router := newSystemRouter(t, now)

	tests := []struct {
		path string
		want string
	}{
		{"/time/UTC", `{"current_time":"2024-03-10T04:30:00.123456+00:00"}`},
		// no daylight saving: March 10th stays at -05:00
		{"/time/eastern", `{"current_time":"2024-03-09T23:30:00.123456-05:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestSystemHandler_Health(t *testing.T) {
	now := time.Unix(1700000000, 0)
	router := newSystemRouter(t, now)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "ok",
		"database": "ok",
		"redis": "disabled",
		"version": "v1",
		"commit": "abc",
		"build_time": "today",
		"time": 1700000000
	}`, w.Body.String())
}
