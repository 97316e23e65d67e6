package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/suggestion"
)

type SuggestionHandler struct {
	service *application.SuggestionService
}

func NewSuggestionHandler(service *application.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// SuggestMeasurements godoc
// @Summary Suggest measurements from the background and objectives
// @Tags ai
// @Accept json
// @Produce json
// @Param input body suggestion.MeasurementRequest true "Form context"
// @Success 200 {object} suggestion.MeasurementResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Router /ai/measurements [post]
func (h *SuggestionHandler) SuggestMeasurements(c *gin.Context) {
	var req suggestion.MeasurementRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	c.JSON(http.StatusOK, h.service.SuggestMeasurements(req))
}

// ObjectiveMeasurements godoc
// @Summary Suggest KPIs with the language model
// @Tags ai
// @Accept json
// @Produce json
// @Param input body suggestion.ObjectiveMeasurementsRequest true "Objectives"
// @Success 200 {object} suggestion.ObjectiveMeasurementsResponse
// @Failure 503 {object} response.ErrorResponse "AI assistance is not configured"
// @Router /ai/objective-measurements-suggestion [post]
func (h *SuggestionHandler) ObjectiveMeasurements(c *gin.Context) {
	var req suggestion.ObjectiveMeasurementsRequest
	if !bindJSON(c, &req, nil) {
		return
	}

	resp, err := h.service.ObjectiveMeasurements(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarketingActionPlan godoc
// @Summary Draft a marketing action plan
// @Tags ai
// @Accept json
// @Produce json
// @Param input body suggestion.MarketingActionPlanRequest true "Form content"
// @Success 200 {object} suggestion.MarketingActionPlanResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 503 {object} response.ErrorResponse "AI assistance is not configured"
// @Router /ai/marketing-action-plan [post]
func (h *SuggestionHandler) MarketingActionPlan(c *gin.Context) {
	var req suggestion.MarketingActionPlanRequest
	if !bindJSON(c, &req, map[string]string{"FormContent": "formContent"}) {
		return
	}

	resp, err := h.service.MarketingActionPlan(c.Request.Context(), req.FormContent)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Assist godoc
// @Summary Generic form assistance
// @Tags ai
// @Accept json
// @Produce json
// @Param input body suggestion.AssistRequest true "Question"
// @Success 200 {object} suggestion.AssistResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 503 {object} response.ErrorResponse "AI assistance is not configured"
// @Router /ai/assistance [post]
func (h *SuggestionHandler) Assist(c *gin.Context) {
	var req suggestion.AssistRequest
	if !bindJSON(c, &req, nil) {
		return
	}

	resp, err := h.service.Assist(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
