package notify

import (
	"testing"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/domain/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEmailData() marketing.EmailData {
	return marketing.EmailData{
		Request: marketing.Request{
			Background:   "Line one\nLine <two>",
			Objectives:   "Grow traffic by 25%",
			Measurement:  []string{"Website Traffic", "Conversion Rate"},
			CCEmails:     []string{"lead@example.com", "Owner@example.com"},
			ContactEmail: "owner@example.com",
			Targeting:    "Small business owners",
			ActionSteps:  "Visit -> Sign up",
			ActivityType: marketing.ActivityOnceOff,
		},
		SubmittedBy: "owner@example.com",
		SubmittedAt: "2025-03-04T05:06:07Z",
	}
}

func TestRenderMarketingEmail_OnceOff(t *testing.T) {
	html, err := RenderMarketingEmail(sampleEmailData(), nil, time.UTC)
	require.NoError(t, err)

	assert.Contains(t, html, "⚡ Once Off Activity")
	assert.NotContains(t, html, "Broader Targeted Campaign")
	assert.Contains(t, html, "Line one<br>Line &lt;two&gt;")
	assert.Contains(t, html, "Submitted by: owner@example.com • 3/4/2025, 5:06:07 AM")
	assert.Contains(t, html, `<div class="list-item">Website Traffic</div>`)
	assert.NotContains(t, html, "AI Analysis")
	assert.NotContains(t, html, "Reference Links")
	assert.NotContains(t, html, "Campaign Details")
}

func TestRenderMarketingEmail_CampaignWithSummary(t *testing.T) {
	data := sampleEmailData()
	data.ActivityType = marketing.ActivityBroaderCampaign
	data.PreferredChannels = []string{"SEO", "Webinars"}
	data.Timeline = "Q3"
	data.ExampleLinks = []string{"https://example.com/a?x=1&y=2"}
	data.Examples = "<script>alert(1)</script>"
	summary := &suggestion.FormSummary{Summary: "A solid request.", Confidence: 88}

	html, err := RenderMarketingEmail(data, summary, time.UTC)
	require.NoError(t, err)

	assert.Contains(t, html, "📊 Broader Targeted Campaign")
	assert.Contains(t, html, "88% confidence")
	assert.Contains(t, html, "A solid request.")
	assert.Contains(t, html, "Campaign Details")
	assert.Contains(t, html, `<div class="list-item">SEO</div>`)
	assert.Contains(t, html, "Timeline:")
	assert.NotContains(t, html, "Budget:")
	assert.Contains(t, html, "Reference Links")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestMarketingSubject(t *testing.T) {
	assert.Equal(t, "New Marketing Request: Activity", MarketingSubject(marketing.ActivityOnceOff, false, false))
	assert.Equal(t, "🤖 New Marketing Request: Campaign", MarketingSubject(marketing.ActivityBroaderCampaign, true, false))
	assert.Equal(t, "[DEMO] 🤖 New Marketing Request: Activity", MarketingSubject(marketing.ActivityOnceOff, true, true))
}

func TestBuildMarketingMessage_Recipients(t *testing.T) {
	settings := EmailSettings{
		From:    "Genie Form <noreply@example.com>",
		To:      []string{"team@example.com"},
		Bcc:     []string{"archive@example.com"},
		DemoTo:  []string{"demo@example.com"},
		DemoBcc: []string{"demo-bcc@example.com"},
	}

	msg, err := BuildMarketingMessage(settings, sampleEmailData(), nil)
	require.NoError(t, err)
	assert.Equal(t, settings.From, msg.From)
	assert.Equal(t, []string{"team@example.com"}, msg.To)
	assert.Equal(t, []string{"archive@example.com"}, msg.Bcc)
	assert.Equal(t, []string{"lead@example.com", "Owner@example.com"}, msg.Cc)
	assert.Equal(t, "New Marketing Request: Activity", msg.Subject)

	settings.DemoMode = true
	msg, err = BuildMarketingMessage(settings, sampleEmailData(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo@example.com"}, msg.To)
	assert.Equal(t, []string{"demo-bcc@example.com"}, msg.Bcc)
	assert.Equal(t, "[DEMO] New Marketing Request: Activity", msg.Subject)
}
