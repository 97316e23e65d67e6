package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const DefaultThemeColor = "0078d4"

var ErrTeamsNotConfigured = errors.New("Teams webhook URL not configured")

type TeamsClient struct {
	url        string
	httpClient *http.Client
}

func NewTeamsClient(url string, httpClient *http.Client) *TeamsClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &TeamsClient{url: url, httpClient: httpClient}
}

func (c *TeamsClient) Configured() bool {
	return c != nil && c.url != ""
}

// Post sends payload as JSON to the webhook.
func (c *TeamsClient) Post(ctx context.Context, payload any) error {
	if !c.Configured() {
		return ErrTeamsNotConfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("teams webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Teams webhook failed: %d %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}

type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CardSection struct {
	ActivityTitle    string `json:"activityTitle"`
	ActivitySubtitle string `json:"activitySubtitle"`
	Facts            []Fact `json:"facts"`
	Markdown         bool   `json:"markdown"`
}

type MessageCardPayload struct {
	Type       string        `json:"@type"`
	Context    string        `json:"@context"`
	ThemeColor string        `json:"themeColor"`
	Summary    string        `json:"summary"`
	Sections   []CardSection `json:"sections"`
}

// MessageCard builds a legacy connector card. Facts are sorted by key.
func MessageCard(title, message string, data map[string]any, color string) MessageCardPayload {
	if color == "" {
		color = DefaultThemeColor
	}
	facts := make([]Fact, 0, len(data))
	for _, k := range sortedKeys(data) {
		facts = append(facts, Fact{Name: k, Value: Stringify(data[k])})
	}
	return MessageCardPayload{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: color,
		Summary:    title,
		Sections: []CardSection{{
			ActivityTitle:    title,
			ActivitySubtitle: message,
			Facts:            facts,
			Markdown:         true,
		}},
	}
}

type CardElement struct {
	Type    string        `json:"type"`
	Text    string        `json:"text,omitempty"`
	Width   string        `json:"width,omitempty"`
	Columns []CardElement `json:"columns,omitempty"`
	Items   []CardElement `json:"items,omitempty"`
}

type AdaptiveCardContent struct {
	Type string        `json:"type"`
	Body []CardElement `json:"body"`
}

type Attachment struct {
	ContentType string              `json:"contentType"`
	Content     AdaptiveCardContent `json:"content"`
}

type AdaptiveCardPayload struct {
	Type        string       `json:"type"`
	Attachments []Attachment `json:"attachments"`
}

// AdaptiveCard builds the form submission card, one column per field. Keys
// named in order come first in that order, the rest follow sorted.
func AdaptiveCard(formID string, data map[string]any, order []string) AdaptiveCardPayload {
	columns := make([]CardElement, 0, len(data))
	for _, k := range orderedKeys(data, order) {
		columns = append(columns, CardElement{
			Type:  "Column",
			Width: "auto",
			Items: []CardElement{{Type: "TextBlock", Text: fmt.Sprintf("**%s:** %s", k, Stringify(data[k]))}},
		})
	}
	return AdaptiveCardPayload{
		Type: "message",
		Attachments: []Attachment{{
			ContentType: "application/vnd.microsoft.card.adaptive",
			Content: AdaptiveCardContent{
				Type: "AdaptiveCard",
				Body: []CardElement{
					{Type: "TextBlock", Text: "New Form Submission: " + formID},
					{Type: "ColumnSet", Columns: columns},
				},
			},
		}},
	}
}

// Stringify renders a form value for a card. Lists are comma separated.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

func orderedKeys(m map[string]any, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(order))
	for _, k := range order {
		if _, ok := m[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, k := range sortedKeys(m) {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
