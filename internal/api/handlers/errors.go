package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/linskybing/genie-forms/pkg/response"
	"github.com/linskybing/genie-forms/pkg/utils"
)

// bindJSON binds the body and writes a 400 with friendly messages on failure.
func bindJSON(c *gin.Context, v any, labels map[string]string) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err, labels)})
		return false
	}
	return true
}

func bindingMessage(err error, labels map[string]string) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return "Invalid input"
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.StructField()
		lbl, ok := labels[field]
		if !ok {
			lbl = strings.ToLower(field)
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// writeError maps service errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	if ve, ok := form.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: ve.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, forms.ErrFormNotFound),
		errors.Is(err, application.ErrSubmissionNotFound),
		errors.Is(err, application.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrMarketingRoute):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, application.ErrLLMNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, application.ErrEmailDelivery),
		errors.Is(err, notify.ErrMailerNotConfigured):
		status = http.StatusBadGateway
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

// actorFromContext describes the caller. Anonymous callers get an Actor
// without a user id.
func actorFromContext(c *gin.Context) application.Actor {
	actor := application.Actor{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	if claims, err := utils.GetClaimsFromContext(c); err == nil {
		uid := claims.UserID
		actor.UserID = &uid
		actor.Username = claims.Username
		actor.Email = claims.Email
		actor.IsAdmin = claims.IsAdmin
	}
	return actor
}
