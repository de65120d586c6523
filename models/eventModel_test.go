package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEvent(t *testing.T) {
	assert.Equal(t, BucketLive, ClassifyEvent(true))
	// Any non-live update lands in past, even for a future event.
	assert.Equal(t, BucketPast, ClassifyEvent(false))
}

func TestValidateEventWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	start := now.Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)
	assert.NoError(t, ValidateEventWindow(start, end, now))

	assert.ErrorIs(t, ValidateEventWindow(now.Add(-time.Hour), end, now), ErrEventInPast)
	assert.ErrorIs(t, ValidateEventWindow(start, start, now), ErrEventWindow)
	assert.ErrorIs(t, ValidateEventWindow(start, start.Add(-time.Hour), now), ErrEventWindow)
}

func TestEventEnded(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ended := Event{EndDate: now.Add(-time.Minute)}
	assert.True(t, ended.Ended(now))

	running := Event{EndDate: now.Add(time.Minute)}
	assert.False(t, running.Ended(now))

	noEnd := Event{}
	assert.False(t, noEnd.Ended(now))
}

func TestMissingRequiredFields(t *testing.T) {
	fields := []FormField{
		{Name: "fullName", Required: true},
		{Name: "email", Required: true},
		{Name: "tshirt", Required: false},
	}

	missing := MissingRequiredFields(fields, map[string]any{
		"fullName": "Asha",
		"email":    "",
	})
	assert.Equal(t, []string{"email"}, missing)

	missing = MissingRequiredFields(fields, map[string]any{
		"fullName": "Asha",
		"email":    "asha@example.com",
	})
	assert.Empty(t, missing)

	// Optional fields never block a registration.
	missing = MissingRequiredFields(fields, map[string]any{
		"fullName": "Asha",
		"email":    "asha@example.com",
		"tshirt":   nil,
	})
	assert.Empty(t, missing)
}

func TestRegistrationFormFields(t *testing.T) {
	form := EventRegistrationForm{
		FormFields: []byte(`[{"label":"Full Name","name":"fullName","type":"text","required":true}]`),
	}

	fields, err := form.Fields()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "fullName", fields[0].Name)
	assert.True(t, fields[0].Required)

	empty := EventRegistrationForm{}
	fields, err = empty.Fields()
	assert.NoError(t, err)
	assert.Empty(t, fields)
}
