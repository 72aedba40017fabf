package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/labasis/labasis-api/internal/api/middleware"
	"github.com/labasis/labasis-api/internal/domain"
)

var (
	errAuthRequired = errors.New("authentication required")
	errInvalidID    = errors.New("invalid id in path")
)

// currentUser rebuilds the authenticated identity from the values
// VerifyJWT stored in the request context.
func currentUser(ctx *gin.Context) (domain.User, error) {
	idValue, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, errAuthRequired
	}
	roleValue, exists := ctx.Get(middleware.ContextKeyUserRole)
	if !exists {
		return domain.User{}, errAuthRequired
	}

	id, ok := idValue.(uint)
	if !ok {
		return domain.User{}, errAuthRequired
	}
	role, ok := roleValue.(domain.Role)
	if !ok {
		return domain.User{}, errAuthRequired
	}

	return domain.User{ID: id, Role: role}, nil
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}
