package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildhub-lab/buildhub/dao/model"
	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name  string
	users logic.UserService
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:  "auth",
		users: conf.Users,
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("login", mgr.Login)
	g.POST("refresh", mgr.Refresh)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	LoginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	RefreshReq struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	LoginResp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
)

// Login godoc
// @Summary Log in with username and password
// @Description Verifies the password and issues an access/refresh token pair whose claims carry the user's team names
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "credentials"
// @Success 200 {object} resputil.Response[LoginResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "invalid credentials"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	user, err := mgr.users.GetByName(c, req.Username)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid username or password", resputil.InvalidCredentials)
		return
	}
	if user.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid username or password", resputil.InvalidCredentials)
		return
	}

	msg, err := mgr.tokenMessage(c, user)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	access, refresh, err := util.GetTokenMgr().CreateTokens(msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, LoginResp{AccessToken: access, RefreshToken: refresh})
}

// Refresh godoc
// @Summary Exchange a refresh token for a fresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body RefreshReq true "refresh token"
// @Success 200 {object} resputil.Response[LoginResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "invalid token"
// @Router /v1/auth/refresh [post]
func (mgr *AuthMgr) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	token, err := util.GetTokenMgr().CheckToken(req.RefreshToken)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenInvalid)
		return
	}

	// Re-read the user so a role or membership change invalidates
	// stale claims on refresh.
	user, err := mgr.users.GetByName(c, token.Username)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User no longer exists", resputil.TokenInvalid)
		return
	}

	msg, err := mgr.tokenMessage(c, user)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	access, refresh, err := util.GetTokenMgr().CreateTokens(msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, LoginResp{AccessToken: access, RefreshToken: refresh})
}

func (mgr *AuthMgr) tokenMessage(c *gin.Context, user *model.User) (*util.JWTMessage, error) {
	groups, err := mgr.users.GroupsForUser(c, user.ID)
	if err != nil {
		return nil, err
	}
	return &util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Role:     user.Role,
		Teams:    lo.Map(groups, func(g *model.Group, _ int) string { return g.Name }),
	}, nil
}
