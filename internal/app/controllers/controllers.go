package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/middleware"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/helpers"
)

// pathID reads a numeric path parameter, answering 404 for malformed IDs
func pathID(ctx *gin.Context, name string, notFound error) (int64, bool) {
	id, ok := helpers.ParseIDParam(ctx, name)
	if !ok {
		middleware.HandleAPIError(ctx, notFound)
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user, answering 401 when missing
func actorID(ctx *gin.Context) (int64, bool) {
	id, ok := helpers.ActorID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return 0, false
	}
	return id, true
}

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

func respondOK(ctx *gin.Context, data interface{}) {
	respond(ctx, http.StatusOK, data, "")
}
