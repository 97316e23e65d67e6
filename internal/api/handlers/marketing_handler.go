package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/marketing"
)

type MarketingHandler struct {
	service *application.MarketingService
}

func NewMarketingHandler(service *application.MarketingService) *MarketingHandler {
	return &MarketingHandler{service: service}
}

// SubmitMarketingRequest godoc
// @Summary Submit a marketing request
// @Description Stores the request, emails the marketing team and posts to Teams.
// @Tags marketing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body marketing.Request true "Marketing request"
// @Success 201 {object} form.Submission
// @Failure 400 {object} response.ValidationErrorResponse "Validation failed"
// @Failure 502 {object} response.ErrorResponse "Email delivery failed"
// @Router /marketing-requests [post]
func (h *MarketingHandler) SubmitMarketingRequest(c *gin.Context) {
	var req marketing.Request
	if !bindJSON(c, &req, map[string]string{"ActivityType": "activity type"}) {
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}
