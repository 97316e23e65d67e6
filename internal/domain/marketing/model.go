package marketing

import "time"

type ActivityType string

const (
	ActivityOnceOff         ActivityType = "once-off"
	ActivityBroaderCampaign ActivityType = "broader-campaign"
)

// Label is the short name used in email subjects.
func (a ActivityType) Label() string {
	if a == ActivityBroaderCampaign {
		return "Campaign"
	}
	return "Activity"
}

// Request is a marketing request as entered by the user.
type Request struct {
	Background        string       `json:"background"`
	Objectives        string       `json:"objectives"`
	Measurement       []string     `json:"measurement"`
	CCEmails          []string     `json:"ccEmails,omitempty"`
	ContactEmail      string       `json:"contactEmail"`
	Targeting         string       `json:"targeting"`
	Examples          string       `json:"examples,omitempty"`
	ExampleLinks      []string     `json:"exampleLinks,omitempty"`
	ActionSteps       string       `json:"actionSteps"`
	ActivityType      ActivityType `json:"activityType,omitempty" binding:"omitempty,oneof=once-off broader-campaign"`
	PreferredChannels []string     `json:"preferredChannels,omitempty"`
	Timeline          string       `json:"timeline,omitempty"`
	Budget            string       `json:"budget,omitempty"`
}

// Values returns the request as form values for definition validation.
func (r Request) Values() map[string]any {
	return map[string]any{
		"background":   r.Background,
		"objectives":   r.Objectives,
		"measurement":  toAny(r.Measurement),
		"ccEmails":     toAny(r.CCEmails),
		"targeting":    r.Targeting,
		"examples":     r.Examples,
		"exampleLinks": toAny(r.ExampleLinks),
		"actionSteps":  r.ActionSteps,
	}
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// EmailData is the payload of the marketing email.
type EmailData struct {
	Request
	SubmittedBy        string `json:"submittedBy"`
	SubmittedAt        string `json:"submittedAt"`
	IsLinkedInCampaign bool   `json:"isLinkedInCampaign,omitempty"`
}

// SubmittedTime parses SubmittedAt, falling back to the zero time.
func (d EmailData) SubmittedTime() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, d.SubmittedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
