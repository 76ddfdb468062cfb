package main

import (
	"github.com/gin-gonic/gin"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/handler"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/middleware"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
)

type routeHandlers struct {
	auth        *handler.AuthHandler
	subjects    *handler.SubjectHandler
	preferences *handler.PreferenceHandler
	timetable   *handler.TimetableHandler
	exports     *handler.ExportHandler
	metrics     *handler.MetricsHandler
}

// registerRoutes mounts the API under prefix. Timetable routes are skipped
// when h.timetable is nil, and export routes when h.exports is nil.
func registerRoutes(r *gin.Engine, prefix string, h routeHandlers, tokens middleware.TokenValidator, audit middleware.AuditWriter) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	auth := api.Group("/auth")
	auth.POST("/register", h.auth.Register)
	auth.POST("/login", h.auth.Login)
	auth.POST("/refresh", h.auth.Refresh)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))
	secured.POST("/auth/logout", h.auth.Logout)
	secured.GET("/auth/me", h.auth.Me)

	study := secured.Group("")
	study.Use(middleware.RequireRoles(models.RoleStudent, models.RoleAdmin))

	study.GET("/subjects", h.subjects.List)
	study.POST("/subjects", h.subjects.Create)
	study.GET("/subjects/:id", h.subjects.Get)
	study.PUT("/subjects/:id", h.subjects.Update)
	study.DELETE("/subjects/:id", h.subjects.Delete)

	study.GET("/preferences", h.preferences.Get)
	study.PUT("/preferences", h.preferences.Update)

	if h.timetable == nil {
		return
	}
	study.GET("/timetable", h.timetable.Get)
	study.POST("/timetable/generate", middleware.Audit(audit, models.AuditActionTimetableGenerate, "timetable"), h.timetable.Generate)
	study.POST("/timetable/days/:day/regenerate", middleware.Audit(audit, models.AuditActionTimetableDayReroll, "timetable"), h.timetable.RegenerateDay)
	study.PATCH("/timetable/days/:day/sessions/:sessionId", h.timetable.SetCompleted)
	study.GET("/timetable/progress", h.timetable.Progress)

	if h.exports != nil {
		study.POST("/timetable/exports", middleware.Audit(audit, models.AuditActionTimetableExport, "timetable_export"), h.exports.Create)
		study.GET("/timetable/exports/:id", h.exports.Status)
		api.GET("/export/:token", h.exports.Download)
	}
}
