package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewStatusMgr)
}

// StatusMgr serves the public dashboard reads.
type StatusMgr struct {
	name    string
	complex *logic.ComplexLogic
}

func NewStatusMgr(conf *RegisterConfig) Manager {
	return &StatusMgr{
		name:    "status",
		complex: conf.Complex,
	}
}

func (mgr *StatusMgr) GetName() string { return mgr.name }

func (mgr *StatusMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("queues", mgr.QueueSizes)
}

func (mgr *StatusMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *StatusMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// QueueSizes godoc
// @Summary Current build queue sizes
// @Description Three independent counts (waiting, running, importing). A build may change state between the counts; treat the result as eventually consistent.
// @Tags Status
// @Produce json
// @Success 200 {object} resputil.Response[logic.QueueSizes] "queue sizes"
// @Router /v1/status/queues [get]
func (mgr *StatusMgr) QueueSizes(c *gin.Context) {
	sizes, err := mgr.complex.QueueSizes(c)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, sizes)
}
