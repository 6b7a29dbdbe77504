package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildhub-lab/buildhub/internal/logic"
	"github.com/buildhub-lab/buildhub/internal/resputil"
	"github.com/buildhub-lab/buildhub/pkg/provider"
)

// respondLogicError maps the logic error taxonomy onto HTTP. Anything
// unrecognized is a storage failure and stays a 500.
func respondLogicError(c *gin.Context, err error) {
	var notFound *logic.NotFoundError
	var inProgress *logic.ActionInProgressError
	var noRights *logic.InsufficientRightsError
	var confDefect *provider.ConfigurationError

	switch {
	case errors.As(err, &notFound):
		resputil.HTTPError(c, http.StatusNotFound, notFound.Message, resputil.ObjectNotFound)
	case errors.As(err, &inProgress):
		resputil.HTTPError(c, http.StatusConflict, inProgress.Error(), resputil.ActionInProgress)
	case errors.As(err, &noRights):
		resputil.HTTPError(c, http.StatusForbidden, noRights.Message, resputil.UserNotAllowed)
	case errors.As(err, &confDefect):
		resputil.HTTPError(c, http.StatusInternalServerError, confDefect.Error(), resputil.ConfigurationDefect)
	default:
		resputil.Error(c, err.Error(), resputil.NotSpecified)
	}
}
