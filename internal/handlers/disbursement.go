package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"posobra-painel/internal/database"
	"posobra-painel/internal/disbursement"
)

// GetSchedule devolve o rateio do projeto (editado ou o uniforme padrão)
// já com percentuais normalizados e valores em moeda.
func (h *Handler) GetSchedule(c *gin.Context) {
	r, ok := h.app.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	if !r.IsProject() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cronograma financeiro só existe para etapas"})
		return
	}

	entries := h.app.Schedules.ScheduleFor(&r)
	c.JSON(http.StatusOK, gin.H{
		"id":      r.ID,
		"projeto": r.Name,
		"bruto":   entries,
		"rateio":  disbursement.Allocate(r.Budget, entries),
	})
}

type scheduleForm struct {
	Entries []disbursement.Entry `json:"percentuais"`
}

// PutSchedule substitui os percentuais brutos do projeto. Os valores são
// aceitos como vierem; a normalização acontece sempre no consumo, sem
// mexer no que foi digitado.
func (h *Handler) PutSchedule(c *gin.Context) {
	r, ok := h.app.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	if !r.IsProject() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cronograma financeiro só existe para etapas"})
		return
	}

	var form scheduleForm
	if err := c.ShouldBindJSON(&form); err != nil || len(form.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	h.app.Schedules.Set(r.ID, form.Entries)

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "cronograma", r.ID, "update", "Rateio de desembolso editado: "+r.Name)
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     r.ID,
		"rateio": disbursement.Allocate(r.Budget, form.Entries),
	})
}

// Consolidated soma o desembolso mês a mês dos projetos selecionados
// (?ids=a,b,c; vazio = todos) e devolve também a abertura por projeto.
func (h *Handler) Consolidated(c *gin.Context) {
	selected := map[string]bool{}
	if ids := strings.TrimSpace(c.Query("ids")); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			selected[strings.TrimSpace(id)] = true
		}
	}

	var projects []disbursement.ProjectSchedule
	for _, r := range h.app.Store.Records() {
		if !r.IsProject() {
			continue
		}
		if len(selected) > 0 && !selected[r.ID] {
			continue
		}
		projects = append(projects, disbursement.ProjectSchedule{
			ID:      r.ID,
			Name:    r.Name,
			Budget:  r.Budget,
			Entries: h.app.Schedules.ScheduleFor(r),
		})
	}

	c.JSON(http.StatusOK, disbursement.Consolidate(projects))
}
