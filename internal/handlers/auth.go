package handlers

import (
	"net/http"
	"strings"

	"posobra-painel/internal/database"
	"posobra-painel/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login confere as credenciais e abre a sessão. Falha é só mensagem
// inline, sem bloqueio nem limite de tentativas.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	form.Username = strings.TrimSpace(form.Username)

	var user models.User
	if err := database.DB.Where("username = ?", form.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário ou senha incorretos!"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário ou senha incorretos!"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	sess.Set("editing_enabled", false)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// EnableEditing liga o modo de edição da sessão autenticada.
func (h *Handler) EnableEditing(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Set("editing_enabled", true)
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"editing_enabled": true})
}

// DisableEditing desliga o modo de edição e abandona qualquer edição em
// andamento.
func (h *Handler) DisableEditing(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Set("editing_enabled", false)
	_ = sess.Save()
	h.app.Edit.Cancel()
	c.JSON(http.StatusOK, gin.H{"editing_enabled": false})
}
