package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventBucket is the classification of an event within its category.
// Every event sits in exactly one bucket; the tagged field replaces the
// three parallel id lists the category used to carry, so an event can
// never appear in zero or two buckets.
type EventBucket string

const (
	BucketUpcoming EventBucket = "upcoming"
	BucketLive     EventBucket = "live"
	BucketPast     EventBucket = "past"
)

// ClassifyEvent maps an admin update to a bucket: live updates land in
// the live bucket, everything else lands in past. An upcoming event has
// no path back to the upcoming bucket once touched; callers relying on
// time-based classification must derive it from the event dates instead.
func ClassifyEvent(isLive bool) EventBucket {
	if isLive {
		return BucketLive
	}
	return BucketPast
}

type Event struct {
	gorm.Model
	Title       string      `json:"title"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	IsLive      bool        `json:"isLive"`
	CategoryID  uint        `json:"category"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Bucket      EventBucket `json:"bucket"`
}

// Ended reports whether the event's end time has passed. Events without
// an end date never end.
func (e *Event) Ended(now time.Time) bool {
	return !e.EndDate.IsZero() && !e.EndDate.After(now)
}

var (
	ErrEventInPast      = errors.New("Event can be created for the future dates only")
	ErrEventWindow      = errors.New("End date must be greater than start date!")
	ErrLeaderboardEarly = errors.New("Cannot generate leaderboard before event ends")
)

// ValidateEventWindow gates event creation: the start must not be in the
// past and the end must be after the start.
func ValidateEventWindow(start, end, now time.Time) error {
	if start.Before(now) {
		return ErrEventInPast
	}
	if !end.After(start) {
		return ErrEventWindow
	}
	return nil
}

type EventCategory struct {
	gorm.Model
	Title       string `json:"title" gorm:"uniqueIndex"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// FormField is one descriptor in an event's registration form schema.
type FormField struct {
	Label    string   `json:"label"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// EventRegistrationForm holds the one-per-event dynamic form schema.
// Saving again replaces the field list (upsert semantics).
type EventRegistrationForm struct {
	gorm.Model
	EventID    uint           `json:"eventId" gorm:"uniqueIndex"`
	FormFields datatypes.JSON `json:"formFields"`
}

// Fields decodes the stored field descriptors.
func (f *EventRegistrationForm) Fields() ([]FormField, error) {
	var fields []FormField
	if len(f.FormFields) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(f.FormFields, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// MissingRequiredFields returns the names of required descriptors absent
// from a submitted payload. Validation is deliberately loose: present
// values are not type-checked against the descriptor.
func MissingRequiredFields(fields []FormField, payload map[string]any) []string {
	var missing []string
	for _, field := range fields {
		if !field.Required {
			continue
		}
		value, ok := payload[field.Name]
		if !ok || value == nil || value == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// EventRegistration stores one submitted response with its schema-less
// payload.
type EventRegistration struct {
	gorm.Model
	EventID  uint           `json:"eventId"`
	FormData datatypes.JSON `json:"formData"`
}

type LeaderboardEntry struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// EventLeaderboard holds the post-event ranked results. The unique index
// on EventID backstops the missing handler-level double-create guard.
type EventLeaderboard struct {
	gorm.Model
	EventID uint           `json:"event" gorm:"uniqueIndex"`
	Entries datatypes.JSON `json:"entries"`
}
