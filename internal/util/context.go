package util

import (
	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/internal/logic"
)

const (
	UserIDKey    = "x-user-id"
	UsernameKey  = "x-user-name"
	UserRoleKey  = "x-user-role"
	UserTeamsKey = "x-user-teams"
)

func SetActorContext(c *gin.Context, msg JWTMessage) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(UsernameKey, msg.Username)
	c.Set(UserRoleKey, msg.Role)
	c.Set(UserTeamsKey, msg.Teams)
}

// GetActor reads the actor set by the auth middleware back out of the
// gin context as an explicit logic.Actor value.
func GetActor(c *gin.Context) logic.Actor {
	actor := logic.Actor{
		ID:   c.GetUint(UserIDKey),
		Name: c.GetString(UsernameKey),
	}
	if role, ok := c.Get(UserRoleKey); ok {
		actor.Role = role.(model.Role)
	}
	if teams, ok := c.Get(UserTeamsKey); ok {
		actor.Teams = teams.([]string)
	}
	return actor
}
