package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/internal/util"
)

func AuthProtected() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenExpired)
			c.Abort()
			return
		}

		authToken := t[1]
		token, err := util.GetTokenMgr().CheckToken(authToken)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
			c.Abort()
			return
		}

		util.SetActorContext(c, token)
		c.Next()
	}
}

// AuthAdmin must run after AuthProtected.
func AuthAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := util.GetActor(c)
		if actor.Role != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusForbidden, "Admin role required", resputil.UserNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}
