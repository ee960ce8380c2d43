package handlers

import (
	"net/http"

	"posobra-painel/internal/database"
	"posobra-painel/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
