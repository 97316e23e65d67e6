package form

type FormSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FieldCount  int    `json:"fieldCount"`
}

func (d *Definition) Summary() FormSummary {
	return FormSummary{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FieldCount:  d.ValueFieldCount(),
	}
}

type SubmitFormDTO struct {
	Values map[string]any `json:"values" binding:"required"`
}

// ProcessFormDTO is the body of the process-form function.
type ProcessFormDTO struct {
	FormID   string         `json:"formId" binding:"required"`
	FormData map[string]any `json:"formData" binding:"required"`
	UserID   *uint          `json:"userId"`
}

type SubmissionFilter struct {
	FormID   string `form:"form_id"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Normalize applies paging defaults.
func (f *SubmissionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 50
	}
}

type ValidateResult struct {
	Valid  bool        `json:"valid"`
	Values Normalized  `json:"values"`
	Fields FieldErrors `json:"fields,omitempty"`
}
