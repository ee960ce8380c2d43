package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"posobra-painel/internal/database"
	"posobra-painel/internal/models"
	"posobra-painel/internal/store"
)

const viewDateLayout = "02/01/2006"

type recordView struct {
	ID           string          `json:"id"`
	ParentID     string          `json:"id_pai,omitempty"`
	SequenceCode string          `json:"codigo_sequencia"`
	Status       string          `json:"status"`
	Name         string          `json:"projeto"`
	ServiceType  string          `json:"tipo_servico"`
	PlannedStart string          `json:"data_inicio_previsto,omitempty"`
	PlannedEnd   string          `json:"data_termino_previsto,omitempty"`
	Feasibility  decimal.Decimal `json:"valor_viabilidade"`
	Budget       decimal.Decimal `json:"orcamento"`
	ExecutionPct decimal.Decimal `json:"execucao_pct"`
	ActualSpend  decimal.Decimal `json:"gasto_real"`
	Balance      decimal.Decimal `json:"saldo"`
	Mode         string          `json:"modo_medicao"`
	Comments     string          `json:"comentarios"`
}

func toView(r models.Record) recordView {
	v := recordView{
		ID:           r.ID,
		ParentID:     r.ParentID,
		SequenceCode: r.SequenceCode,
		Status:       string(r.Status),
		Name:         r.Name,
		ServiceType:  r.ServiceType,
		Feasibility:  r.Feasibility,
		Budget:       r.Budget,
		ExecutionPct: r.ExecutionPct,
		ActualSpend:  r.ActualSpend,
		Balance:      r.Budget.Sub(r.ActualSpend),
		Mode:         string(r.Mode),
		Comments:     r.Comments,
	}
	v.PlannedStart = formatViewDate(r.PlannedStart)
	v.PlannedEnd = formatViewDate(r.PlannedEnd)
	return v
}

func formatViewDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(viewDateLayout)
}

func (h *Handler) ListRecords(c *gin.Context) {
	records := h.app.Store.Records()
	out := make([]recordView, 0, len(records))
	for _, r := range records {
		out = append(out, toView(*r))
	}
	c.JSON(http.StatusOK, gin.H{"registros": out})
}

func (h *Handler) GetRecord(c *gin.Context) {
	r, ok := h.app.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	c.JSON(http.StatusOK, toView(r))
}

func (h *Handler) CreateProject(c *gin.Context) {
	r, err := h.app.Store.AddProject()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar o projeto"})
		return
	}

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "registro", r.ID, "create", "Projeto adicionado: "+r.Name)
	}
	c.JSON(http.StatusCreated, toView(r))
}

func (h *Handler) CreateSubStage(c *gin.Context) {
	r, err := h.app.Store.AddSubStage(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		case errors.Is(err, store.ErrNotProject):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subetapa só pode ser adicionada a uma etapa"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar a subetapa"})
		}
		return
	}

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "registro", r.ID, "create", "Subetapa adicionada: "+r.SequenceCode)
	}
	c.JSON(http.StatusCreated, toView(r))
}

// DeleteRecord remove o registro; etapa leva as subetapas junto. Os
// rateios de desembolso dos removidos são descartados também.
func (h *Handler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.app.Store.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir o registro"})
		return
	}

	for _, rid := range removed {
		h.app.Schedules.Delete(rid)
	}
	if editID, ok := h.app.Edit.Editing(); ok {
		for _, rid := range removed {
			if rid == editID {
				h.app.Edit.Cancel()
				break
			}
		}
	}

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "registro", id, "delete", "Registro excluído")
	}
	c.JSON(http.StatusOK, gin.H{"removidos": removed})
}
