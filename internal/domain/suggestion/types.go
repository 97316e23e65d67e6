package suggestion

// Type tags the kind of assistance a response carries.
type Type string

const (
	TypeObjectiveMeasurements Type = "objective-measurements-suggestion"
	TypeFormSummarisation     Type = "form-summarisation"
	TypeMarketingActionPlan   Type = "marketing-action-plan"
	TypeGeneric               Type = "generic"
)

// FormContext is the free text the keyword scorer reads.
type FormContext struct {
	Background string `json:"background"`
	Objectives string `json:"objectives"`
}

// Suggestions is the output of the keyword scorer.
type Suggestions struct {
	SuggestedOptions  []string `json:"suggestedOptions"`
	CustomSuggestions []string `json:"customSuggestions"`
}

type ObjectiveMeasurementsRequest struct {
	Type         Type     `json:"type,omitempty"`
	Context      string   `json:"context"`
	Objectives   string   `json:"objectives"`
	Measurements []string `json:"measurements"`
}

type ObjectiveMeasurementsResponse struct {
	Type              Type     `json:"type"`
	SuggestedOptions  []string `json:"suggestedOptions"`
	CustomSuggestions []string `json:"customSuggestions"`
	Reasoning         string   `json:"reasoning"`
}

type MarketingActionPlanRequest struct {
	Type        Type           `json:"type,omitempty"`
	FormContent map[string]any `json:"formContent" binding:"required"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type MarketingActionPlanResponse struct {
	Type                 Type     `json:"type"`
	ActionPlan           []string `json:"actionPlan"`
	Timeline             string   `json:"timeline"`
	Recommendations      []string `json:"recommendations"`
	Priority             Priority `json:"priority"`
	BudgetConsiderations []string `json:"budget_considerations"`
}

type FormSummary struct {
	Type       Type     `json:"type"`
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints,omitempty"`
	Insights   []string `json:"insights,omitempty"`
	Confidence int      `json:"confidence"`
}

type AssistFormContext struct {
	FormID        string         `json:"formId"`
	CurrentFields map[string]any `json:"currentFields"`
	FieldType     string         `json:"fieldType,omitempty"`
}

type AssistRequest struct {
	Message     string             `json:"message" binding:"required"`
	FormContext *AssistFormContext `json:"formContext,omitempty"`
}

type AssistResponse struct {
	Message string `json:"message"`
}

// MeasurementRequest drives the suggestion button of a multiselect field.
type MeasurementRequest struct {
	FieldName  string   `json:"fieldName"`
	Current    []string `json:"current"`
	Background string   `json:"background"`
	Objectives string   `json:"objectives"`
}

type MeasurementResponse struct {
	Selected          []string `json:"selected"`
	SuggestedOptions  []string `json:"suggestedOptions"`
	CustomSuggestions []string `json:"customSuggestions"`
}
