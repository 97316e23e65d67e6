package notify

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/domain/suggestion"
)

const demoSubjectPrefix = "[DEMO] "

// Message is an outbound email.
type Message struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	HTML    string
}

// EmailSettings carries sender and recipient configuration.
type EmailSettings struct {
	From     string
	To       []string
	Bcc      []string
	DemoMode bool
	DemoTo   []string
	DemoBcc  []string
	Location *time.Location
}

func (s EmailSettings) recipients() (to, bcc []string) {
	if s.DemoMode {
		return s.DemoTo, s.DemoBcc
	}
	return s.To, s.Bcc
}

// MarketingSubject builds the subject line of a marketing request email.
func MarketingSubject(activity marketing.ActivityType, hasSummary, demo bool) string {
	var sb strings.Builder
	if demo {
		sb.WriteString(demoSubjectPrefix)
	}
	if hasSummary {
		sb.WriteString("🤖 ")
	}
	sb.WriteString("New Marketing Request: ")
	sb.WriteString(activity.Label())
	return sb.String()
}

// BuildMarketingMessage renders the email and fills in the envelope.
func BuildMarketingMessage(s EmailSettings, data marketing.EmailData, summary *suggestion.FormSummary) (Message, error) {
	html, err := RenderMarketingEmail(data, summary, s.Location)
	if err != nil {
		return Message{}, err
	}
	to, bcc := s.recipients()

	cc := make([]string, 0, len(data.CCEmails)+1)
	seen := make(map[string]struct{})
	for _, addr := range append(append([]string{}, data.CCEmails...), data.ContactEmail) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cc = append(cc, addr)
	}

	return Message{
		From:    s.From,
		To:      to,
		Cc:      cc,
		Bcc:     bcc,
		Subject: MarketingSubject(data.ActivityType, summary != nil, s.DemoMode),
		HTML:    html,
	}, nil
}

type emailView struct {
	marketing.EmailData
	Summary     *suggestion.FormSummary
	SubmittedAt string
	Broader     bool
}

var emailTemplate = template.Must(template.New("marketing").Funcs(template.FuncMap{
	"nl2br": nl2br,
}).Parse(marketingEmailHTML))

// RenderMarketingEmail renders the marketing request email. All user values
// are escaped; newlines become <br>.
func RenderMarketingEmail(data marketing.EmailData, summary *suggestion.FormSummary, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	submitted := data.SubmittedAt
	if t := data.SubmittedTime(); !t.IsZero() {
		submitted = t.In(loc).Format("1/2/2006, 3:04:05 PM")
	}

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, emailView{
		EmailData:   data,
		Summary:     summary,
		SubmittedAt: submitted,
		Broader:     data.ActivityType == marketing.ActivityBroaderCampaign,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

const marketingEmailHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Marketing Request</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
    .header { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
    .section { margin-bottom: 25px; }
    .section-title { color: #2563eb; font-size: 18px; font-weight: bold; margin-bottom: 10px; border-bottom: 2px solid #e5e7eb; padding-bottom: 5px; }
    .field-label { font-weight: bold; color: #374151; margin-bottom: 5px; }
    .field-value { background: #f9fafb; padding: 10px; border-radius: 4px; margin-bottom: 15px; }
    .list-item { background: #f3f4f6; padding: 8px; margin: 5px 0; border-radius: 4px; }
    .activity-type { background: #dbeafe; color: #1e40af; padding: 10px; border-radius: 6px; font-weight: bold; text-align: center; }
    .campaign-details { background: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; margin: 15px 0; }
    .ai-summary { background: #f0f9ff; border-left: 4px solid #0ea5e9; padding: 20px; margin: 20px 0; border-radius: 8px; }
    .ai-summary h3 { margin-top: 0; color: #0c4a6e; }
    .ai-summary .confidence { background: #e0f2fe; color: #0c4a6e; padding: 4px 8px; border-radius: 12px; font-size: 12px; margin-left: 10px; }
    .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 12px; color: #6b7280; }
    a { color: #2563eb; text-decoration: none; }
  </style>
</head>
<body>
  <div class="header">
    <h1 style="margin: 0; color: #1f2937;">🧞‍♂️ New Marketing Request</h1>
    <p style="margin: 10px 0 0 0; color: #6b7280;">Submitted by: {{.SubmittedBy}} • {{.SubmittedAt}}</p>
  </div>

  <div class="activity-type">{{if .Broader}}📊 Broader Targeted Campaign{{else}}⚡ Once Off Activity{{end}}</div>
{{with .Summary}}
  <div class="ai-summary">
    <h3>🤖 AI Analysis <span class="confidence">{{.Confidence}}% confidence</span></h3>
    <div class="field-value"><strong>Summary:</strong> {{.Summary}}</div>
  </div>
{{end}}
  <div class="section">
    <div class="section-title">Background &amp; Context</div>
    <div class="field-value">{{nl2br .Background}}</div>
  </div>

  <div class="section">
    <div class="section-title">Objectives</div>
    <div class="field-value">{{nl2br .Objectives}}</div>
  </div>

  <div class="section">
    <div class="section-title">Measurement Methods</div>
    {{range .Measurement}}<div class="list-item">{{.}}</div>{{end}}
  </div>

  <div class="section">
    <div class="section-title">Target Audience</div>
    <div class="field-value">{{nl2br .Targeting}}</div>
  </div>

  <div class="section">
    <div class="section-title">Expected Action Steps</div>
    <div class="field-value">{{nl2br .ActionSteps}}</div>
  </div>
{{if .Examples}}
  <div class="section">
    <div class="section-title">Examples &amp; Inspiration</div>
    <div class="field-value">{{nl2br .Examples}}</div>
  </div>
{{end}}{{if .ExampleLinks}}
  <div class="section">
    <div class="section-title">Reference Links</div>
    {{range .ExampleLinks}}<div class="list-item"><a href="{{.}}" target="_blank">{{.}}</a></div>{{end}}
  </div>
{{end}}{{if .Broader}}
  <div class="campaign-details">
    <h3 style="margin-top: 0; color: #92400e;">📈 Campaign Details</h3>
    {{if .PreferredChannels}}<div class="field-label">Preferred Channels:</div>
    {{range .PreferredChannels}}<div class="list-item">{{.}}</div>{{end}}{{end}}
    {{if .Timeline}}<div class="field-label">Timeline:</div>
    <div class="field-value">{{.Timeline}}</div>{{end}}
    {{if .Budget}}<div class="field-label">Budget:</div>
    <div class="field-value">{{.Budget}}</div>{{end}}
  </div>
{{end}}
  <div class="footer">
    <p>This request was submitted through the Genie marketing request form.</p>
    <p>Reply to this email or contact the submitter directly for any questions.</p>
  </div>
</body>
</html>
`
