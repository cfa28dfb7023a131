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

// PersonController handles person-centric operations.
type PersonController struct {
	personService *services.PersonService
}

// NewPersonController creates a new PersonController.
func NewPersonController(personService *services.PersonService) *PersonController {
	return &PersonController{personService: personService}
}

func parsePersonID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid person ID")
	}
	return id, nil
}

// CreatePerson creates a person without attaching a role. Roles are added
// later through the per-type attach routes.
func (c *PersonController) CreatePerson(ctx *gin.Context) {
	var req dto.PersonPayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	person, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid date of birth"))
		return
	}

	created, err := c.personService.Create(ctx, person)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(created))
}

// ListPersons lists person summaries, optionally filtered by a name/email
// search term and a role type.
func (c *PersonController) ListPersons(ctx *gin.Context) {
	var roleType models.RoleType
	if raw := ctx.Query("role"); raw != "" {
		parsed, err := models.ParseRoleType(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		roleType = parsed
	}

	persons, err := c.personService.List(ctx, ctx.Query("search"), roleType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(persons, len(persons)))
}

// GetPerson returns one person together with all their role instances.
func (c *PersonController) GetPerson(ctx *gin.Context) {
	id, err := parsePersonID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	person, err := c.personService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(person))
}

// UpdatePerson applies a partial update to a person's identity fields.
func (c *PersonController) UpdatePerson(ctx *gin.Context) {
	id, err := parsePersonID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid date of birth"))
		return
	}

	person, err := c.personService.Update(ctx, id, update)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(person))
}

// DeletePerson removes a person together with their role instances and
// status history.
func (c *PersonController) DeletePerson(ctx *gin.Context) {
	id, err := parsePersonID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.personService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Person deleted"))
}
