package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/internal/logic"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared dependencies every manager may
// pick from.
type RegisterConfig struct {
	Complex  *logic.ComplexLogic
	Builds   logic.BuildService
	Projects logic.ProjectService
	Users    logic.UserService
}

// Registers collects the manager constructors; each handler file
// appends its own from init().
var Registers []func(conf *RegisterConfig) Manager
