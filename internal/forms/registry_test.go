package forms

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyOverride = `id: survey
title: Quick Survey
description: Shorter survey
fields:
  - name: score
    label: Score
    type: number
    required: true
`

const extraForm = `id: event-signup
title: Event Signup
description: Register for an event
fields:
  - name: email
    label: Email
    type: email
    required: true
  - name: sessions
    label: Sessions
    type: multiselect
    options: [Morning, Afternoon]
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestBuiltinDefinitionsPassCheck(t *testing.T) {
	for _, def := range Builtin() {
		def := def
		assert.NoError(t, def.Check(), def.ID)
	}
}

func TestRegistry_DefaultEnablesMarketingOnly(t *testing.T) {
	r := NewRegistry([]string{MarketingRequestID}, nil)

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, MarketingRequestID, list[0].ID)
	assert.Equal(t, 8, list[0].ValueFieldCount())

	_, err := r.Get("contact")
	assert.ErrorIs(t, err, ErrFormNotFound)
	_, ok := r.Lookup("contact")
	assert.True(t, ok)
}

func TestRegistry_WildcardKeepsOrder(t *testing.T) {
	r := NewRegistry([]string{"*"}, nil)
	var ids []string
	for _, def := range r.List() {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{"contact", "feedback", "survey", "newsletter", MarketingRequestID}, ids)
}

func TestRegistry_RegisterRejectsBadDefinition(t *testing.T) {
	r := NewRegistry([]string{"*"}, nil)
	err := r.Register(form.Definition{ID: "x"})
	assert.ErrorIs(t, err, form.ErrInvalidDefinition)
	assert.Len(t, r.All(), 5)
}

func TestLoadDir_OverrideAndAdd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", surveyOverride)
	writeFile(t, dir, "b.yml", extraForm)
	writeFile(t, dir, "readme.txt", "ignored")

	r := NewRegistry([]string{"*"}, nil)
	require.NoError(t, r.Reload(dir))

	survey, err := r.Get("survey")
	require.NoError(t, err)
	assert.Equal(t, "Quick Survey", survey.Title)

	event, err := r.Get("event-signup")
	require.NoError(t, err)
	assert.Len(t, event.Fields, 2)
	assert.Len(t, r.All(), 6)
}

func TestLoadDir_BadFileKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", extraForm)
	r := NewRegistry([]string{"*"}, nil)
	require.NoError(t, r.Reload(dir))

	writeFile(t, dir, "b.yaml", "id: broken\ntitle: Broken\nfields: []\n")
	assert.Error(t, r.Reload(dir))
	_, err := r.Get("event-signup")
	assert.NoError(t, err)
}

func TestLoadDir_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", extraForm)
	writeFile(t, dir, "b.yaml", extraForm)
	_, err := LoadDir(dir)
	assert.ErrorIs(t, err, form.ErrInvalidDefinition)
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry([]string{"*"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.Watch(ctx, dir))

	writeFile(t, dir, "event.yaml", extraForm)

	assert.Eventually(t, func() bool {
		_, err := r.Get("event-signup")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
}
