package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/pkg/response"
	"github.com/linskybing/genie-forms/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"form not found", fmt.Errorf("%w: x", forms.ErrFormNotFound), http.StatusNotFound},
		{"submission not found", application.ErrSubmissionNotFound, http.StatusNotFound},
		{"forbidden", application.ErrForbidden, http.StatusForbidden},
		{"llm", application.ErrLLMNotConfigured, http.StatusServiceUnavailable},
		{"email", application.ErrEmailDelivery, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.err.Error(), body.Error)
		})
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	errs := form.FieldErrors{}
	errs.Add("email", "Invalid email address")
	writeError(c, fmt.Errorf("submit: %w", errs.Err()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body response.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, []string{"Invalid email address"}, body.Fields["email"])
}

func TestActorFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("User-Agent", "tests")

	anon := actorFromContext(c)
	assert.Nil(t, anon.UserID)
	assert.Equal(t, "tests", anon.UserAgent)

	c.Set("claims", &types.Claims{UserID: 3, Username: "bob", Email: "bob@example.com", IsAdmin: true})
	actor := actorFromContext(c)
	require.NotNil(t, actor.UserID)
	assert.Equal(t, uint(3), *actor.UserID)
	assert.Equal(t, "bob@example.com", actor.Email)
	assert.True(t, actor.IsAdmin)
}
