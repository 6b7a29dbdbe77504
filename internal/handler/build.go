package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/internal/util"
	"github.com/buildhub-lab/buildhub/pkg/provider"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewBuildMgr)
}

type BuildMgr struct {
	name     string
	builds   logic.BuildService
	projects logic.ProjectService
}

func NewBuildMgr(conf *RegisterConfig) Manager {
	return &BuildMgr{
		name:     "builds",
		builds:   conf.Builds,
		projects: conf.Projects,
	}
}

func (mgr *BuildMgr) GetName() string { return mgr.name }

func (mgr *BuildMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *BuildMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListByProject)
	g.GET(":id", mgr.Get)
	g.POST("", mgr.Create)
	g.DELETE(":id", mgr.Delete)
}

func (mgr *BuildMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ListBuildsReq struct {
		ProjectID uint `form:"project_id" binding:"required"`
	}

	BuildCreateReq struct {
		ProjectID   uint             `json:"projectId" binding:"required"`
		PackageName string           `json:"packageName"`
		SourceType  model.SourceType `json:"sourceType" binding:"required"`
		Source      datatypes.JSON   `json:"source"`
	}

	BuildCreateResp struct {
		ID     uint   `json:"id"`
		TaskID string `json:"taskId"`
	}
)

func (mgr *BuildMgr) ListByProject(c *gin.Context) {
	var req ListBuildsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	builds, err := mgr.builds.BuildsByProject(c, req.ProjectID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, builds)
}

func (mgr *BuildMgr) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, "invalid build id", resputil.InvalidRequest)
		return
	}

	build, err := mgr.builds.GetByID(c, uint(id))
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "Build does not exist.", resputil.ObjectNotFound)
		return
	}
	resputil.Success(c, build)
}

// Create godoc
// @Summary Submit a build
// @Description Validates the source parameters through the provider for the given source type, then persists the build in the waiting state for the dispatcher to claim
// @Tags Build
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body BuildCreateReq true "build"
// @Success 200 {object} resputil.Response[BuildCreateResp] "created build"
// @Failure 400 {object} resputil.Response[any] "invalid source parameters"
// @Failure 500 {object} resputil.Response[any] "source type without a provider"
// @Router /v1/builds [post]
func (mgr *BuildMgr) Create(c *gin.Context) {
	actor := util.GetActor(c)

	var req BuildCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	// A build must reference a live project at creation time.
	project, err := mgr.projects.GetByID(c, req.ProjectID)
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "Project does not exist.", resputil.ObjectNotFound)
		return
	}

	p, err := provider.ForSourceType(req.SourceType, req.Source)
	if err != nil {
		// An unmapped source type is a deployment defect; do not
		// degrade it into a user-facing validation error.
		respondLogicError(c, err)
		return
	}
	if err := p.Validate(); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	build := logic.NewBuild(uuid.NewString(), project.ID, actor.ID, req.PackageName, req.SourceType, req.Source)
	if err := mgr.builds.Create(c, build); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, BuildCreateResp{ID: build.ID, TaskID: build.TaskID})
}

// Delete godoc
// @Summary Delete a single finished build
// @Tags Build
// @Produce json
// @Security Bearer
// @Param id path int true "build id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 403 {object} resputil.Response[any] "insufficient rights"
// @Failure 409 {object} resputil.Response[any] "build action in progress"
// @Router /v1/builds/{id} [delete]
func (mgr *BuildMgr) Delete(c *gin.Context) {
	actor := util.GetActor(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, "invalid build id", resputil.InvalidRequest)
		return
	}

	build, err := mgr.builds.GetByID(c, uint(id))
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "Build does not exist.", resputil.ObjectNotFound)
		return
	}

	if err := mgr.builds.DeleteBuild(c, actor, build); err != nil {
		respondLogicError(c, err)
		return
	}
	resputil.Success(c, nil)
}
