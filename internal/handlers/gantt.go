package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"posobra-painel/internal/gantt"
)

// Gantt devolve o layout do cronograma físico: barras com offset/duração
// em dias e as marcas mensais do eixo. Filtros: ?tipo=etapas|subetapas,
// ?projetos=id,id e ?ano=YYYY.
func (h *Handler) Gantt(c *gin.Context) {
	var f gantt.Filter

	switch c.Query("tipo") {
	case "etapas":
		f.Kind = gantt.KindEtapa
	case "subetapas":
		f.Kind = gantt.KindSubetapa
	case "", "todos":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtro de tipo inválido"})
		return
	}

	if ids := strings.TrimSpace(c.Query("projetos")); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.Projects = append(f.Projects, id)
			}
		}
	}

	if yearStr := c.Query("ano"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ano inválido"})
			return
		}
		f.Year = year
	}

	c.JSON(http.StatusOK, gantt.Build(h.app.Store.Records(), f))
}
