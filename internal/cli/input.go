package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

//go:embed plan.schema.json
var planSchemaJSON []byte

const (
	planSchemaURL       = "schema://plan.schema.json"
	defaultSubjectColor = "#3B82F6"
)

var (
	planSchemaOnce sync.Once
	planSchema     *jsonschema.Schema
	planSchemaErr  error
)

// planInput is the file format accepted by plan and regenerate-day.
type planInput struct {
	Subjects    []planner.Subject `json:"subjects"`
	Preferences inputPreferences  `json:"preferences"`
}

type inputPreferences struct {
	planner.Preferences
	DayStart string `json:"dayStart,omitempty"`
}

func compiledPlanSchema() (*jsonschema.Schema, error) {
	planSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(planSchemaJSON, &doc); err != nil {
			planSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(planSchemaURL, doc); err != nil {
			planSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		planSchema, planSchemaErr = c.Compile(planSchemaURL)
	})
	return planSchema, planSchemaErr
}

// parsePlanInput validates raw against the input schema before decoding it.
func parsePlanInput(raw []byte) (*planInput, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledPlanSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("input does not match schema: %w", err)
	}

	var in planInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	prefs := in.Preferences.Preferences
	if budget := prefs.DailyMinutes(); budget < prefs.SessionDuration {
		return nil, fmt.Errorf("sessionDuration %d exceeds the daily study budget of %d minutes", prefs.SessionDuration, budget)
	}
	for i := range in.Subjects {
		if in.Subjects[i].Color == "" {
			in.Subjects[i].Color = defaultSubjectColor
		}
	}
	return &in, nil
}

func loadPlanInput(path string) (*planInput, error) {
	if path == "" {
		return nil, fmt.Errorf("--input is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return parsePlanInput(raw)
}

// dayStart resolves the layout start: flag first, then the file, then the default.
func (in *planInput) dayStart(flagValue string) (planner.Clock, error) {
	raw := flagValue
	if raw == "" {
		raw = in.Preferences.DayStart
	}
	if raw == "" {
		return planner.DefaultDayStart, nil
	}
	return planner.ParseClock(raw)
}
