package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewGroupMgr)
}

type GroupMgr struct {
	name    string
	complex *logic.ComplexLogic
}

func NewGroupMgr(conf *RegisterConfig) Manager {
	return &GroupMgr{
		name:    "groups",
		complex: conf.Complex,
	}
}

func (mgr *GroupMgr) GetName() string { return mgr.name }

func (mgr *GroupMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET(":name", mgr.Get)
	g.GET(":name/projects/:project", mgr.GetProject)
}

func (mgr *GroupMgr) RegisterProtected(g *gin.RouterGroup) {
	// Registered on the group root: a static "active" segment would
	// collide with the ":name" wildcard in gin's routing tree.
	g.GET("", mgr.ActiveForUser)
}

func (mgr *GroupMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// Get godoc
// @Summary Resolve a group by alias
// @Tags Group
// @Produce json
// @Param name path string true "group alias"
// @Success 200 {object} resputil.Response[model.Group] "group"
// @Failure 404 {object} resputil.Response[any] "group not found or ambiguous"
// @Router /v1/groups/{name} [get]
func (mgr *GroupMgr) Get(c *gin.Context) {
	group, err := mgr.complex.ResolveGroup(c, c.Param("name"))
	if err != nil {
		respondLogicError(c, err)
		return
	}
	resputil.Success(c, group)
}

// GetProject godoc
// @Summary Resolve a project inside a group
// @Tags Group
// @Produce json
// @Param name path string true "group alias"
// @Param project path string true "project name"
// @Success 200 {object} resputil.Response[model.Project] "project"
// @Failure 404 {object} resputil.Response[any] "group or project not found"
// @Router /v1/groups/{name}/projects/{project} [get]
func (mgr *GroupMgr) GetProject(c *gin.Context) {
	project, err := mgr.complex.ResolveGroupProject(c, c.Param("name"), c.Param("project"))
	if err != nil {
		respondLogicError(c, err)
		return
	}
	resputil.Success(c, project)
}

// ActiveForUser godoc
// @Summary Groups from the actor's team list that contain the given user
// @Description Returns an empty list when the actor's session carries no team names. Defaults to the actor itself when no user is given.
// @Tags Group
// @Produce json
// @Security Bearer
// @Param user query string false "user name"
// @Success 200 {object} resputil.Response[[]model.Group] "matching groups"
// @Router /v1/groups [get]
func (mgr *GroupMgr) ActiveForUser(c *gin.Context) {
	actor := util.GetActor(c)

	userName := c.Query("user")
	if userName == "" {
		userName = actor.Name
	}

	groups, err := mgr.complex.ActiveGroupsForUser(c, actor, userName)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, groups)
}
