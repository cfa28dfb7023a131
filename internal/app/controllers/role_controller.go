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
	"github.com/sdemirtas/registrar/internal/pkg/validation"
)

// RoleController handles the per-type role routes. One instance is mounted
// per role type; the handlers themselves are type-agnostic.
type RoleController struct {
	roleType          models.RoleType
	enrollmentService *services.EnrollmentService
	transitionService *services.TransitionService
	queryService      *services.QueryService
}

// NewRoleController creates a RoleController bound to one role type.
func NewRoleController(
	roleType models.RoleType,
	enrollmentService *services.EnrollmentService,
	transitionService *services.TransitionService,
	queryService *services.QueryService,
) *RoleController {
	return &RoleController{
		roleType:          roleType,
		enrollmentService: enrollmentService,
		transitionService: transitionService,
		queryService:      queryService,
	}
}


func roleIdentifier(ctx *gin.Context) (string, error) {
	id := ctx.Param("identifier")
	if !validation.IsIdentifier(id) {
		return "", apperrors.NewValidationError("Invalid identifier format")
	}
	return id, nil
}

// Enroll creates a new person together with their first role instance.
func (c *RoleController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	person, err := req.Person.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid date of birth"))
		return
	}

	view, err := c.enrollmentService.EnrollNew(ctx, c.roleType, person, req.Role.ToModel(c.roleType))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(view))
}

// Attach adds a role instance of this controller's type to an existing
// person.
func (c *RoleController) Attach(ctx *gin.Context) {
	personID, err := strconv.ParseInt(ctx.Param("personId"), 10, 64)
	if err != nil || personID <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid person ID"))
		return
	}

	var req dto.AttachRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	view, err := c.enrollmentService.AttachRole(ctx, c.roleType, personID, req.Role.ToModel(c.roleType))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(view))
}

// List lists role instances of this type, filtered by query parameters.
func (c *RoleController) List(ctx *gin.Context) {
	filters := models.RoleFilters{
		Status:   ctx.Query("status"),
		Category: ctx.Query("category"),
		Text:     ctx.Query("search"),
	}
	if raw := ctx.Query("entryYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid entry year"))
			return
		}
		filters.EntryYear = year
	}
	for _, attr := range []string{"faculty", "department", "major", "program", "unit", "title"} {
		if v := ctx.Query(attr); v != "" {
			if filters.Attrs == nil {
				filters.Attrs = make(map[string]string)
			}
			filters.Attrs[attr] = v
		}
	}

	views, err := c.queryService.ListRoles(ctx, c.roleType, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(views, len(views)))
}

// Get returns one role instance by its identifier.
func (c *RoleController) Get(ctx *gin.Context) {
	identifier, err := roleIdentifier(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	view, err := c.queryService.GetRole(ctx, c.roleType, identifier)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(view))
}

// Update applies a partial update to a role instance's descriptive fields.
func (c *RoleController) Update(ctx *gin.Context) {
	identifier, err := roleIdentifier(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	view, err := c.queryService.UpdateRoleFields(ctx, c.roleType, identifier, req.ToUpdate())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(view))
}

// Transition changes a role instance's lifecycle status.
func (c *RoleController) Transition(ctx *gin.Context) {
	identifier, err := roleIdentifier(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.transitionService.Transition(ctx, c.roleType, identifier, req.Status, req.ChangedBy, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(result))
}

// AllowedTransitions returns the current status of a role instance and the
// statuses it may move to.
func (c *RoleController) AllowedTransitions(ctx *gin.Context) {
	identifier, err := roleIdentifier(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	current, next, err := c.transitionService.AllowedNext(ctx, c.roleType, identifier)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(gin.H{
		"identifier": identifier,
		"status":     current,
		"allowed":    next,
	}))
}
