package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/domain/suggestion"
	"github.com/linskybing/genie-forms/pkg/llm"
	"go.uber.org/zap"
)

var ErrLLMNotConfigured = errors.New("AI assistance is not configured")

const (
	objectiveMeasurementsTokens = 400
	actionPlanTokens            = 600
	summaryTokens               = 500
	assistTokens                = 200

	maxSuggestedOptions  = 3
	maxCustomSuggestions = 2
	itemsPerCategory     = 2

	noReplyMessage = "I apologize, but I could not generate a response."
)

type keywordRule struct {
	option   string
	keywords []string
	patterns []*regexp.Regexp
}

type contextCategory struct {
	triggers []string
	items    []string
}

// measurementKeywords is ordered; ties in score keep this order.
var measurementKeywords = compileRules([]keywordRule{
	{option: "Website Traffic", keywords: []string{"traffic", "visitors", "pageviews", "visits", "website"}},
	{option: "Lead Generation", keywords: []string{"leads", "generate", "prospects", "qualified", "pipeline"}},
	{option: "Revenue/Sales", keywords: []string{"revenue", "sales", "profit", "income", "purchase", "buy"}},
	{option: "Brand Awareness", keywords: []string{"awareness", "brand", "recognition", "visibility", "reach"}},
	{option: "Engagement Rate", keywords: []string{"engagement", "interact", "participate", "social", "likes"}},
	{option: "Conversion Rate", keywords: []string{"conversion", "convert", "signup", "register", "download"}},
	{option: "Click-Through Rate (CTR)", keywords: []string{"click", "ctr", "email", "ad", "campaign"}},
	{option: "Social Media Metrics", keywords: []string{"social", "facebook", "twitter", "instagram", "linkedin", "followers"}},
	{option: "Email Open/Click Rates", keywords: []string{"email", "newsletter", "open", "click", "subscribe"}},
})

var contextCategories = []contextCategory{
	{ // ecommerce
		triggers: []string{"ecommerce", "shop", "store"},
		items:    []string{"Cart Abandonment Rate", "Average Order Value", "Customer Lifetime Value"},
	},
	{ // saas
		triggers: []string{"saas", "software", "subscription"},
		items:    []string{"Monthly Recurring Revenue", "Churn Rate", "Feature Adoption Rate"},
	},
	{ // content
		triggers: []string{"content", "blog", "article"},
		items:    []string{"Time on Page", "Bounce Rate", "Content Shares"},
	},
	{ // b2b
		triggers: []string{"b2b", "enterprise", "business"},
		items:    []string{"Sales Qualified Leads", "Demo Requests", "Pipeline Velocity"},
	},
	{ // webinar
		triggers: []string{"webinar", "event", "demo"},
		items:    []string{"Registration Rate", "Attendance Rate", "Post-Event Engagement"},
	},
	{ // launch
		triggers: []string{"launch", "product", "new"},
		items:    []string{"Pre-Launch Signups", "Launch Day Conversions", "Post-Launch Retention"},
	},
}

var defaultCustomSuggestions = []string{"Cost Per Acquisition", "Return on Investment (ROI)"}

func compileRules(rules []keywordRule) []keywordRule {
	for i := range rules {
		for _, kw := range rules[i].keywords {
			rules[i].patterns = append(rules[i].patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
	}
	return rules
}

type SuggestionService struct {
	llm llm.Client
	log *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSuggestionService(client llm.Client, log *zap.Logger) *SuggestionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SuggestionService{
		llm: client,
		log: log,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source used to pick custom suggestions.
func (s *SuggestionService) SetRand(r *rand.Rand) {
	s.mu.Lock()
	s.rnd = r
	s.mu.Unlock()
}

// LLMEnabled reports whether an LLM client is configured.
func (s *SuggestionService) LLMEnabled() bool {
	return s.llm != nil
}

// ------ Keyword scorer ------

type scoredOption struct {
	option string
	score  int
}

// AnalyzeMeasurementContext suggests measurements from keywords found in the
// background and objectives.
func (s *SuggestionService) AnalyzeMeasurementContext(fc suggestion.FormContext) suggestion.Suggestions {
	text := strings.ToLower(fc.Background + " " + fc.Objectives)

	var scores []scoredOption
	for _, rule := range measurementKeywords {
		score := 0
		for _, re := range rule.patterns {
			score += len(re.FindAllStringIndex(text, -1))
		}
		if score > 0 {
			scores = append(scores, scoredOption{option: rule.option, score: score})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	suggested := make([]string, 0, maxSuggestedOptions)
	for i := 0; i < len(scores) && i < maxSuggestedOptions; i++ {
		suggested = append(suggested, scores[i].option)
	}

	var custom []string
	for _, cat := range contextCategories {
		if containsAny(text, cat.triggers) {
			custom = append(custom, s.pick(cat.items, itemsPerCategory)...)
		}
	}
	if len(custom) == 0 {
		custom = append(custom, defaultCustomSuggestions...)
	}
	custom = uniqueStrings(custom)
	if len(custom) > maxCustomSuggestions {
		custom = custom[:maxCustomSuggestions]
	}

	return suggestion.Suggestions{
		SuggestedOptions:  suggested,
		CustomSuggestions: custom,
	}
}

func (s *SuggestionService) pick(items []string, n int) []string {
	shuffled := append([]string(nil), items...)
	s.mu.Lock()
	s.rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	s.mu.Unlock()
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// SuggestMeasurements merges keyword suggestions into the current selection.
func (s *SuggestionService) SuggestMeasurements(req suggestion.MeasurementRequest) suggestion.MeasurementResponse {
	sug := s.AnalyzeMeasurementContext(suggestion.FormContext{
		Background: req.Background,
		Objectives: req.Objectives,
	})
	selected := uniqueStrings(append(append([]string{}, req.Current...), sug.SuggestedOptions...))
	return suggestion.MeasurementResponse{
		Selected:          selected,
		SuggestedOptions:  sug.SuggestedOptions,
		CustomSuggestions: sug.CustomSuggestions,
	}
}

// ------ LLM flows ------

const objectiveMeasurementsPrompt = `You are a marketing analytics expert helping to identify relevant KPIs and measurements for marketing campaigns.

Based on the provided context, objectives, and existing measurements, suggest appropriate metrics that would help track campaign success.

Respond with a JSON object containing:
- suggestedOptions: array of 3-5 relevant KPI names
- customSuggestions: array of 2-3 specialized metrics for this specific context
- reasoning: brief explanation of why these metrics are recommended

Focus on actionable, measurable metrics that align with the stated objectives.`

const actionPlanPrompt = `You are a marketing strategist creating actionable marketing plans.

Based on the form content provided, create a comprehensive marketing action plan.

Respond with a JSON object containing:
- actionPlan: array of 4-6 specific actionable steps
- timeline: suggested timeline for implementation (e.g., "3-6 months")
- recommendations: array of 3-4 strategic recommendations
- priority: "high", "medium", or "low" based on urgency
- budget_considerations: array of 2-3 budget-related considerations

Make recommendations specific and actionable based on the provided information.`

const summaryPrompt = `You are an expert at analyzing marketing request forms and extracting key insights.

Analyze the provided form content and create a comprehensive summary.

Respond with a JSON object containing:
- summary: concise overview of the marketing request (2-3 sentences)
- confidence: number between 0-100 indicating confidence in the analysis

Focus on extracting meaningful information that would be useful for decision-making.`

const assistPrompt = `You are an AI assistant helping users fill out forms.
%s
Provide helpful, concise assistance. If the user asks about a specific field, provide relevant examples or guidance.
Keep responses brief and actionable.`

// complete calls the LLM; an empty reply becomes the apology text.
func (s *SuggestionService) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if s.llm == nil {
		return "", ErrLLMNotConfigured
	}
	reply, err := s.llm.Complete(ctx, system, user, maxTokens)
	if errors.Is(err, llm.ErrEmptyReply) {
		return noReplyMessage, nil
	}
	if err != nil {
		return "", fmt.Errorf("llm: %w", err)
	}
	return reply, nil
}

func (s *SuggestionService) ObjectiveMeasurements(ctx context.Context, req suggestion.ObjectiveMeasurementsRequest) (suggestion.ObjectiveMeasurementsResponse, error) {
	user := fmt.Sprintf("Context: %s\nObjectives: %s\nCurrent measurements being considered: %s\n\nPlease suggest relevant KPIs and measurements.",
		req.Context, req.Objectives, strings.Join(req.Measurements, ", "))

	reply, err := s.complete(ctx, objectiveMeasurementsPrompt, user, objectiveMeasurementsTokens)
	if err != nil {
		return suggestion.ObjectiveMeasurementsResponse{}, err
	}

	var parsed struct {
		SuggestedOptions  []string `json:"suggestedOptions"`
		CustomSuggestions []string `json:"customSuggestions"`
		Reasoning         string   `json:"reasoning"`
	}
	if err := llm.ExtractJSON(reply, &parsed); err != nil {
		s.log.Debug("objective measurements reply not JSON", zap.Error(err))
		return suggestion.ObjectiveMeasurementsResponse{
			Type:              suggestion.TypeObjectiveMeasurements,
			SuggestedOptions:  []string{"Conversion Rate", "Click-Through Rate", "Cost Per Acquisition"},
			CustomSuggestions: []string{"Return on Investment", "Customer Lifetime Value"},
			Reasoning:         truncate(reply, 200) + "...",
		}, nil
	}

	resp := suggestion.ObjectiveMeasurementsResponse{
		Type:              suggestion.TypeObjectiveMeasurements,
		SuggestedOptions:  orEmpty(parsed.SuggestedOptions),
		CustomSuggestions: orEmpty(parsed.CustomSuggestions),
		Reasoning:         parsed.Reasoning,
	}
	if resp.Reasoning == "" {
		resp.Reasoning = "AI-generated measurement suggestions based on context analysis."
	}
	return resp, nil
}

func fallbackActionPlan() suggestion.MarketingActionPlanResponse {
	return suggestion.MarketingActionPlanResponse{
		Type:                 suggestion.TypeMarketingActionPlan,
		ActionPlan:           []string{"Analyze current marketing position", "Develop target audience strategy", "Create content calendar"},
		Timeline:             "3-6 months",
		Recommendations:      []string{"Focus on digital channels", "Track key metrics"},
		Priority:             suggestion.PriorityMedium,
		BudgetConsiderations: []string{"Consider cost per acquisition", "Allocate budget for testing"},
	}
}

func (s *SuggestionService) MarketingActionPlan(ctx context.Context, formContent map[string]any) (suggestion.MarketingActionPlanResponse, error) {
	content, err := json.MarshalIndent(formContent, "", "  ")
	if err != nil {
		return suggestion.MarketingActionPlanResponse{}, err
	}
	reply, err := s.complete(ctx, actionPlanPrompt,
		"Create a marketing action plan based on this form submission: "+string(content), actionPlanTokens)
	if err != nil {
		return suggestion.MarketingActionPlanResponse{}, err
	}

	var parsed struct {
		ActionPlan           []string `json:"actionPlan"`
		Timeline             string   `json:"timeline"`
		Recommendations      []string `json:"recommendations"`
		Priority             string   `json:"priority"`
		BudgetConsiderations []string `json:"budget_considerations"`
	}
	if err := llm.ExtractJSON(reply, &parsed); err != nil {
		s.log.Debug("action plan reply not JSON", zap.Error(err))
		return fallbackActionPlan(), nil
	}

	resp := suggestion.MarketingActionPlanResponse{
		Type:                 suggestion.TypeMarketingActionPlan,
		ActionPlan:           orEmpty(parsed.ActionPlan),
		Timeline:             parsed.Timeline,
		Recommendations:      orEmpty(parsed.Recommendations),
		Priority:             normalizePriority(parsed.Priority),
		BudgetConsiderations: orEmpty(parsed.BudgetConsiderations),
	}
	if resp.Timeline == "" {
		resp.Timeline = "3-6 months"
	}
	return resp, nil
}

func normalizePriority(p string) suggestion.Priority {
	switch suggestion.Priority(strings.ToLower(strings.TrimSpace(p))) {
	case suggestion.PriorityHigh:
		return suggestion.PriorityHigh
	case suggestion.PriorityLow:
		return suggestion.PriorityLow
	default:
		return suggestion.PriorityMedium
	}
}

// SummariseForm returns nil when no summary can be produced; the email is
// then sent without the analysis block.
func (s *SuggestionService) SummariseForm(ctx context.Context, data marketing.EmailData) *suggestion.FormSummary {
	if s.llm == nil {
		s.log.Debug("llm not configured, skipping summary")
		return nil
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil
	}
	reply, err := s.llm.Complete(ctx, summaryPrompt, "Marketing request form to analyze: "+string(content), summaryTokens)
	if err != nil {
		s.log.Warn("form summary failed", zap.Error(err))
		return nil
	}

	var parsed struct {
		Summary    string   `json:"summary"`
		KeyPoints  []string `json:"keyPoints"`
		Insights   []string `json:"insights"`
		Confidence float64  `json:"confidence"`
	}
	if err := llm.ExtractJSON(reply, &parsed); err != nil {
		s.log.Warn("form summary reply not JSON", zap.Error(err))
		return nil
	}

	out := &suggestion.FormSummary{
		Type:       suggestion.TypeFormSummarisation,
		Summary:    parsed.Summary,
		KeyPoints:  parsed.KeyPoints,
		Insights:   parsed.Insights,
		Confidence: int(parsed.Confidence),
	}
	if out.Summary == "" {
		out.Summary = "Marketing request analyzed."
	}
	if out.Confidence == 0 {
		out.Confidence = 75
	}
	return out
}

func (s *SuggestionService) Assist(ctx context.Context, req suggestion.AssistRequest) (suggestion.AssistResponse, error) {
	var formLine string
	if fc := req.FormContext; fc != nil {
		fields, err := json.MarshalIndent(fc.CurrentFields, "", "  ")
		if err != nil {
			return suggestion.AssistResponse{}, err
		}
		formLine = fmt.Sprintf("The user is working on form %q and currently has these fields filled: %s\n", fc.FormID, fields)
	}

	reply, err := s.complete(ctx, fmt.Sprintf(assistPrompt, formLine), req.Message, assistTokens)
	if err != nil {
		return suggestion.AssistResponse{}, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = noReplyMessage
	}
	return suggestion.AssistResponse{Message: reply}, nil
}

func containsAny(text string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
