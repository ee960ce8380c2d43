package server

import (
	"net/http"

	"posobra-painel/internal/config"
	"posobra-painel/internal/handlers"
	"posobra-painel/internal/middleware"
	"posobra-painel/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("posobra_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// CONSULTA (qualquer papel autenticado)
	auth.GET("/records", h.ListRecords)
	auth.GET("/records/:id", h.GetRecord)
	auth.GET("/records/:id/schedule", h.GetSchedule)
	auth.GET("/disbursement/consolidated", h.Consolidated)
	auth.GET("/gantt", h.Gantt)
	auth.GET("/export/versao", h.ExportVersion)

	// MODO DE EDIÇÃO — só admin e gestor
	editors := auth.Group("/")
	editors.Use(middleware.RequireRole(models.RoleAdmin, models.RoleGestor))

	editors.POST("/editing/enable", h.EnableEditing)
	editors.POST("/editing/disable", h.DisableEditing)

	// mutação de registros — além do papel, exige modo de edição ligado
	editing := editors.Group("/")
	editing.Use(middleware.RequireEditing())

	editing.POST("/records/projects", h.CreateProject)
	editing.POST("/records/:id/substages", h.CreateSubStage)
	editing.POST("/records/:id/delete", h.DeleteRecord)
	editing.POST("/records/:id/edit", h.StartEdit)
	editing.POST("/records/:id/save", h.SaveEdit)
	editing.POST("/records/:id/cancel", h.CancelEdit)
	editing.PUT("/records/:id/schedule", h.PutSchedule)

	// AUDITORIA — só admin
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin),
		h.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
