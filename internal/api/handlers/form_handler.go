package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/linskybing/genie-forms/pkg/response"
	"github.com/linskybing/genie-forms/pkg/utils"
)

type FormHandler struct {
	service *application.FormService
}

func NewFormHandler(service *application.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// ListForms godoc
// @Summary List enabled forms
// @Tags forms
// @Produce json
// @Success 200 {array} form.FormSummary
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListForms())
}

// GetForm godoc
// @Summary Get a form definition
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.Definition
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	def, err := h.service.GetForm(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

// ValidateForm godoc
// @Summary Validate form values without storing them
// @Tags forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.SubmitFormDTO true "Form values"
// @Success 200 {object} form.ValidateResult
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id}/validate [post]
func (h *FormHandler) ValidateForm(c *gin.Context) {
	var input form.SubmitFormDTO
	if !bindJSON(c, &input, nil) {
		return
	}

	result, err := h.service.ValidateForm(c.Param("id"), input.Values)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitForm godoc
// @Summary Submit a form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.SubmitFormDTO true "Form values"
// @Success 201 {object} form.Submission
// @Failure 400 {object} response.ValidationErrorResponse "Validation failed"
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Failure 500 {object} response.ErrorResponse "Failed to store submission"
// @Router /forms/{id}/submissions [post]
func (h *FormHandler) SubmitForm(c *gin.Context) {
	var input form.SubmitFormDTO
	if !bindJSON(c, &input, nil) {
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), actorFromContext(c), c.Param("id"), input.Values)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListMySubmissions godoc
// @Summary List the caller's submissions
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} form.Submission
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Router /submissions/my [get]
func (h *FormHandler) ListMySubmissions(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	subs, err := h.service.ListMine(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// ListSubmissions godoc
// @Summary List all submissions
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param form_id query string false "Form ID"
// @Param status query string false "Status"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} application.SubmissionPage
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Router /submissions [get]
func (h *FormHandler) ListSubmissions(c *gin.Context) {
	var filter form.SubmissionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.service.ListAll(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSubmission godoc
// @Summary Get a submission
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} form.Submission
// @Failure 400 {object} response.ErrorResponse "Invalid ID"
// @Failure 403 {object} response.ErrorResponse "Forbidden"
// @Failure 404 {object} response.ErrorResponse "Submission not found"
// @Router /submissions/{id} [get]
func (h *FormHandler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	sub, err := h.service.GetSubmission(actorFromContext(c), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
