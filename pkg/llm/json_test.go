package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plan struct {
	Timeline string   `json:"timeline"`
	Steps    []string `json:"steps"`
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"bare":         `{"timeline":"3 months","steps":["a"]}`,
		"fenced":       "Here you go:\n```json\n{\"timeline\":\"3 months\",\"steps\":[\"a\"]}\n```\nThanks",
		"prose":        `Sure! {"timeline":"3 months","steps":["a"]} Let me know.`,
		"braces text":  `Note {not json} then {"timeline":"3 months","steps":["a"]}`,
		"string brace": `{"timeline":"3 months","steps":["a"],"extra":"}"}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			var p plan
			require.NoError(t, ExtractJSON(reply, &p))
			assert.Equal(t, "3 months", p.Timeline)
			assert.Equal(t, []string{"a"}, p.Steps)
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	var p plan
	assert.ErrorIs(t, ExtractJSON("I cannot help with that.", &p), ErrNoJSON)
	assert.ErrorIs(t, ExtractJSON(`{"timeline": `, &p), ErrNoJSON)
}
