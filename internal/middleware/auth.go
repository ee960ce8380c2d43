package middleware

import (
	"net/http"

	"posobra-painel/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID := sess.Get("user_id")
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleVal := sess.Get("role")
		roleStr, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
			return
		}
		role := models.UserRole(roleStr)

		if _, ok := roleSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acesso negado"})
			return
		}
		c.Next()
	}
}

// RequireEditing barra as rotas de mutação enquanto o modo de edição da
// sessão não foi ativado.
func RequireEditing() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		enabled, _ := sess.Get("editing_enabled").(bool)
		if !enabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "modo de edição desativado"})
			return
		}
		c.Next()
	}
}
