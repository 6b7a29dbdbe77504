package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name     string
	complex  *logic.ComplexLogic
	projects logic.ProjectService
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name:     "projects",
		complex:  conf.Complex,
		projects: conf.Projects,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListForUser)
	g.POST("", mgr.Create)
	g.DELETE(":id", mgr.Delete)
}

func (mgr *ProjectMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListAll)
}

// ListForUser godoc
// @Summary List the actor's projects
// @Description Personal projects plus projects of groups the actor belongs to
// @Tags Project
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Project] "project list"
// @Router /v1/projects [get]
func (mgr *ProjectMgr) ListForUser(c *gin.Context) {
	actor := util.GetActor(c)

	projects, err := mgr.projects.ListForUser(c, actor.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, projects)
}

func (mgr *ProjectMgr) ListAll(c *gin.Context) {
	projects, err := mgr.projects.ListAll(c)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, projects)
}

type (
	ProjectCreateReq struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		// GroupID makes this a group project; omitted means personal.
		GroupID *uint `json:"groupId"`
	}

	ProjectCreateResp struct {
		ID uint `json:"id"`
	}
)

// Create godoc
// @Summary Create a project
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body ProjectCreateReq true "project"
// @Success 200 {object} resputil.Response[ProjectCreateResp] "created project id"
// @Failure 400 {object} resputil.Response[any] "request parameter error"
// @Router /v1/projects [post]
func (mgr *ProjectMgr) Create(c *gin.Context) {
	actor := util.GetActor(c)

	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.GroupID != nil {
		project.GroupID = req.GroupID
	} else {
		ownerID := actor.ID
		project.OwnerID = &ownerID
	}

	if err := mgr.projects.Create(c, project); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, ProjectCreateResp{ID: project.ID})
}

// Delete godoc
// @Summary Delete a project and all its builds
// @Description Deletes every child build first, then the project. The cascade aborts at the first build that is in progress or that the actor may not delete; builds removed up to that point stay removed.
// @Tags Project
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 403 {object} resputil.Response[any] "insufficient rights"
// @Failure 404 {object} resputil.Response[any] "project not found"
// @Failure 409 {object} resputil.Response[any] "a build action is in progress"
// @Router /v1/projects/{id} [delete]
func (mgr *ProjectMgr) Delete(c *gin.Context) {
	actor := util.GetActor(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, "invalid project id", resputil.InvalidRequest)
		return
	}

	project, err := mgr.projects.GetByID(c, uint(id))
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "Project does not exist.", resputil.ObjectNotFound)
		return
	}

	if err := mgr.complex.DeleteProject(c, actor, project); err != nil {
		respondLogicError(c, err)
		return
	}
	resputil.Success(c, nil)
}
