package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(ctx, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func errorField(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	field, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response should carry an error object")
	return field
}

func TestHandleAPIErrorNotFound(t *testing.T) {
	recorder, body := performError(t, apperrors.ErrPersonNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "RES_001", errorField(t, body)["code"])
}

func TestHandleAPIErrorNotFoundMessagePassthrough(t *testing.T) {
	recorder, body := performError(t, apperrors.NewNotFoundError("Route not found"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "RES_001", errorField(t, body)["code"])
	assert.Equal(t, "Route not found", errorField(t, body)["message"])
}

func TestHandleAPIErrorConflictCarriesDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrPersonExists, "A person with this name and date of birth already exists").
		WithDetails(map[string]interface{}{"existing_id": int64(42)})

	recorder, body := performError(t, err)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	field := errorField(t, body)
	assert.Equal(t, "RES_002", field["code"])
	details, ok := field["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), details["existing_id"])
}

func TestHandleAPIErrorInvalidTransition(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrInvalidTransition, "transition from 'archived' to 'active' is not allowed").
		WithDetails(map[string]interface{}{
			"current_status": "archived",
			"allowed_next":   []string{},
		})

	recorder, body := performError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	field := errorField(t, body)
	assert.Equal(t, "TRN_001", field["code"])
	details, ok := field["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "archived", details["current_status"])
}

func TestHandleAPIErrorValidation(t *testing.T) {
	recorder, body := performError(t, apperrors.NewValidationError("entry year out of range"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	field := errorField(t, body)
	assert.Equal(t, "VAL_001", field["code"])
	assert.Equal(t, "entry year out of range", field["message"])
}

func TestHandleAPIErrorUnknownRoleType(t *testing.T) {
	recorder, body := performError(t, apperrors.ErrUnknownRoleType)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VAL_001", errorField(t, body)["code"])
}

func TestHandleAPIErrorInternalHidesMessage(t *testing.T) {
	recorder, body := performError(t, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	field := errorField(t, body)
	assert.Equal(t, "SRV_001", field["code"])
	assert.Equal(t, "An unexpected error occurred", field["message"])
}
