package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/pkg/response"
)

// FunctionHandler serves the routes that keep the response envelopes of the
// hosted functions the web client was first written against.
type FunctionHandler struct {
	forms     *application.FormService
	marketing *application.MarketingService
}

func NewFunctionHandler(forms *application.FormService, marketing *application.MarketingService) *FunctionHandler {
	return &FunctionHandler{forms: forms, marketing: marketing}
}

type TeamsWebhookInput struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Color   string         `json:"color"`
}

// ProcessForm godoc
// @Summary Process a form submission
// @Tags functions
// @Accept json
// @Produce json
// @Param input body form.ProcessFormDTO true "Form submission"
// @Success 200 {object} response.FunctionResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 500 {object} response.ErrorResponse "Failed to store submission"
// @Router /functions/process-form [post]
func (h *FunctionHandler) ProcessForm(c *gin.Context) {
	var input form.ProcessFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "formId and formData are required"})
		return
	}

	sub, err := h.forms.ProcessForm(c.Request.Context(), actorFromContext(c), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FunctionResponse{
		Success:      true,
		SubmissionID: sub.ID,
		Message:      "Form submitted successfully",
	})
}

// SendMarketingEmail godoc
// @Summary Send the marketing request email
// @Tags functions
// @Accept json
// @Produce json
// @Param input body marketing.EmailData true "Email data"
// @Security BearerAuth
// @Success 200 {object} response.FunctionResponse
// @Failure 400 {object} response.FunctionResponse "Invalid recipients"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.FunctionResponse
// @Router /functions/send-marketing-email [post]
func (h *FunctionHandler) SendMarketingEmail(c *gin.Context) {
	var data marketing.EmailData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusInternalServerError, response.FunctionResponse{Success: false, Error: err.Error()})
		return
	}

	id, err := h.marketing.SendEmail(c.Request.Context(), data)
	if _, ok := form.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, response.FunctionResponse{Success: false, Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.FunctionResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.FunctionResponse{Success: true, Data: gin.H{"id": id}})
}

// TeamsWebhook godoc
// @Summary Post a MessageCard to Teams
// @Tags functions
// @Accept json
// @Produce json
// @Param input body TeamsWebhookInput true "Card content"
// @Success 200 {object} response.FunctionResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /functions/teams-webhook [post]
func (h *FunctionHandler) TeamsWebhook(c *gin.Context) {
	var input TeamsWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.forms.NotifyTeams(c.Request.Context(), input.Title, input.Message, input.Data, input.Color); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.FunctionResponse{Success: true, Message: "Teams notification sent successfully"})
}
