package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"posobra-painel/internal/database"
	"posobra-painel/internal/models"
	"posobra-painel/internal/session"
	"posobra-painel/internal/store"
)

func (h *Handler) StartEdit(c *gin.Context) {
	id := c.Param("id")
	if err := h.app.Edit.StartEdit(h.app.Store, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"editando": id})
}

func (h *Handler) CancelEdit(c *gin.Context) {
	h.app.Edit.Cancel()
	c.JSON(http.StatusOK, gin.H{"editando": nil})
}

type saveForm struct {
	Name             string          `json:"projeto"`
	ServiceType      string          `json:"tipo_servico"`
	Status           string          `json:"status"`
	PlannedStart     string          `json:"data_inicio_previsto"`
	PlannedEnd       string          `json:"data_termino_previsto"`
	Feasibility      decimal.Decimal `json:"valor_viabilidade"`
	Budget           decimal.Decimal `json:"orcamento"`
	MeasurementMode  string          `json:"modo_medicao"`
	MeasurementValue decimal.Decimal `json:"valor_medicao"`
	Comments         string          `json:"comentarios"`
}

// SaveEdit valida e grava os campos do registro em edição. O campo
// derivado (% execução ou gasto real, conforme o modo) é recalculado aqui.
func (h *Handler) SaveEdit(c *gin.Context) {
	id := c.Param("id")

	var form saveForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	in := session.SaveInput{
		Name:        form.Name,
		ServiceType: form.ServiceType,
		Status:      models.RecordStatus(form.Status),
		StartDate:   form.PlannedStart,
		EndDate:     form.PlannedEnd,
		Feasibility: form.Feasibility,
		Budget:      form.Budget,
		Measurement: models.Measurement{
			Mode:  models.MeasurementMode(form.MeasurementMode),
			Value: form.MeasurementValue,
		},
		Comments: form.Comments,
	}

	updated, err := h.app.Edit.Save(h.app.Store, id, in)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotEditing), errors.Is(err, session.ErrWrongRecord):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrInvalidDate),
			errors.Is(err, session.ErrInvalidStatus),
			errors.Is(err, session.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar as alterações"})
		}
		return
	}

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "registro", id, "update", "Alterações salvas: "+updated.SequenceCode)
	}
	c.JSON(http.StatusOK, toView(updated))
}
