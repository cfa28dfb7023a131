package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/models/dto"
	"github.com/sdemirtas/registrar/internal/app/services"
	"github.com/sdemirtas/registrar/internal/middleware"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

// SearchController handles the cross-type query routes.
type SearchController struct {
	queryService *services.QueryService
}

// NewSearchController creates a new SearchController.
func NewSearchController(queryService *services.QueryService) *SearchController {
	return &SearchController{queryService: queryService}
}

// Search searches role instances across all types by free text, with
// optional role type, status and entry year narrowing.
func (c *SearchController) Search(ctx *gin.Context) {
	var roleType models.RoleType
	if raw := ctx.Query("role"); raw != "" {
		parsed, err := models.ParseRoleType(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		roleType = parsed
	}

	year := 0
	if raw := ctx.Query("entryYear"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid entry year"))
			return
		}
		year = parsed
	}

	result, err := c.queryService.Search(ctx, ctx.Query("q"), roleType, ctx.Query("status"), year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(result))
}

// Stats reports person and per-type status counts.
func (c *SearchController) Stats(ctx *gin.Context) {
	stats, err := c.queryService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(stats))
}

// History returns the status history of one role instance, newest first.
func (c *SearchController) History(ctx *gin.Context) {
	roleType, err := models.ParseRoleType(ctx.Param("role"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entries, err := c.queryService.GetHistory(ctx, roleType, ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(entries, len(entries)))
}
