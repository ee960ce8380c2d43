package handlers

import (
	"posobra-painel/internal/state"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handler carrega o estado da aplicação (tabela de registros, edição em
// andamento, rateios de desembolso) para dentro das rotas.
type Handler struct {
	app *state.App
}

func New(app *state.App) *Handler {
	return &Handler{app: app}
}

func currentUserID(c *gin.Context) uint {
	sess := sessions.Default(c)
	uid, _ := sess.Get("user_id").(uint)
	return uid
}
