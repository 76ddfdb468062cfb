package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/handler"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/service"
)

type tokenStub struct {
	role models.UserRole
}

func (s tokenStub) ValidateToken(string) (*models.JWTClaims, error) {
	return &models.JWTClaims{UserID: "u1", Role: s.role}, nil
}

type auditSink struct{}

func (auditSink) CreateAuditLog(context.Context, *models.AuditLog) error { return nil }

func newTestRouter(t *testing.T, withExports bool, role models.UserRole) *gin.Engine {
	t.Helper()
	return newRouterWith(t, true, withExports, role)
}

func newRouterWith(t *testing.T, withPlanner, withExports bool, role models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := routeHandlers{
		auth:        handler.NewAuthHandler(nil),
		subjects:    handler.NewSubjectHandler(nil),
		preferences: handler.NewPreferenceHandler(nil),
		metrics:     handler.NewMetricsHandler(service.NewMetricsService(), nil),
	}
	if withPlanner {
		h.timetable = handler.NewTimetableHandler(nil)
	}
	if withExports {
		h.exports = handler.NewExportHandler(nil)
	}
	r := gin.New()
	registerRoutes(r, "/api/v1", h, tokenStub{role: role}, auditSink{})
	return r
}

func routeSet(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, route := range r.Routes() {
		out[route.Method+" "+route.Path] = true
	}
	return out
}

func TestRegisterRoutesMountsStudyEndpoints(t *testing.T) {
	routes := routeSet(newTestRouter(t, true, models.RoleStudent))
	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"POST /api/v1/subjects",
		"PUT /api/v1/preferences",
		"POST /api/v1/timetable/generate",
		"POST /api/v1/timetable/days/:day/regenerate",
		"PATCH /api/v1/timetable/days/:day/sessions/:sessionId",
		"GET /api/v1/timetable/progress",
		"POST /api/v1/timetable/exports",
		"GET /api/v1/export/:token",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRegisterRoutesSkipsExportsWhenDisabled(t *testing.T) {
	routes := routeSet(newTestRouter(t, false, models.RoleStudent))
	assert.False(t, routes["POST /api/v1/timetable/exports"])
	assert.False(t, routes["GET /api/v1/export/:token"])
}

func TestRegisterRoutesWithoutPlanner(t *testing.T) {
	routes := routeSet(newRouterWith(t, false, true, models.RoleStudent))
	assert.True(t, routes["GET /api/v1/subjects"])
	assert.False(t, routes["GET /api/v1/timetable"])
	assert.False(t, routes["POST /api/v1/timetable/exports"])
}

func TestRoutesRequireBearerToken(t *testing.T) {
	r := newTestRouter(t, false, models.RoleStudent)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/timetable", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesRejectUnknownRole(t *testing.T) {
	r := newTestRouter(t, false, models.UserRole("GUEST"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timetable", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
