package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeLayout is UTC ISO-8601 with milliseconds, e.g. 2024-03-01T09:30:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a time that always serializes in TimeLayout.
type Timestamp struct {
	time.Time
}

// At truncates t to milliseconds, the precision the document keeps.
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// Ptr is At for the nullable fields.
func Ptr(t time.Time) *Timestamp {
	ts := At(t)
	return &ts
}

func (t Timestamp) String() string { return t.UTC().Format(TimeLayout) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	return t.parse(s)
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Timestamp) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	return t.parse(s)
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	*t = At(parsed)
	return nil
}
