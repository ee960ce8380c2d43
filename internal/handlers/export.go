package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"posobra-painel/internal/database"
	"posobra-painel/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportVersion gera a planilha de versão com carimbo de data/hora e a
// entrega para download. O arquivo de dados vivo não é tocado.
func (h *Handler) ExportVersion(c *gin.Context) {
	f, err := export.BuildWorkbook(h.app.Store.Records(), h.app.Schedules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar a planilha"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("versao_cronograma_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		// os headers já foram enviados; só registra o erro
		_ = c.Error(err)
		return
	}

	if uid := currentUserID(c); uid != 0 {
		database.CreateAuditLog(uid, "versao", "", "export", "Versão exportada: "+filename)
	}
}
