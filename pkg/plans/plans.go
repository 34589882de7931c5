// Package plans loads maintenance plan templates from YAML files. A plan is a
// named set of schedule definitions (e.g. the standard service plan for a
// pumper) applied to a concrete vehicle or item in one step.
package plans

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stationops/fleetwatch/pkg/model"
)

// Plan is a named template of recurring obligations.
type Plan struct {
	Name      string         `yaml:"name"`
	Describes string         `yaml:"describes,omitempty"`
	Schedules []ScheduleSpec `yaml:"schedules"`
}

// ScheduleSpec is one obligation within a plan.
type ScheduleSpec struct {
	Kind          model.ScheduleKind `yaml:"kind"`
	Title         string             `yaml:"title"`
	Description   string             `yaml:"description,omitempty"`
	IntervalType  model.IntervalType `yaml:"interval_type"`
	IntervalValue int                `yaml:"interval_value"`
	CostEstimate  float64            `yaml:"cost_estimate,omitempty"`
}

// Load reads a YAML plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file %s: %w", path, err)
	}

	plan, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("plan file %s: %w", path, err)
	}
	return plan, nil
}

// LoadFromBytes parses YAML plan data from raw bytes and validates it.
func LoadFromBytes(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	if plan.Name == "" {
		return nil, fmt.Errorf("missing plan name")
	}
	if len(plan.Schedules) == 0 {
		return nil, fmt.Errorf("no schedules defined")
	}
	for i, spec := range plan.Schedules {
		if spec.Title == "" {
			return nil, fmt.Errorf("schedule %d: missing title", i+1)
		}
		if !spec.IntervalType.Valid() {
			return nil, fmt.Errorf("schedule %d: unknown interval type %q", i+1, spec.IntervalType)
		}
		if spec.IntervalValue <= 0 {
			return nil, fmt.Errorf("schedule %d: interval value must be positive", i+1)
		}
	}

	return &plan, nil
}

// Materialize expands the plan into schedules bound to the given target.
func (p *Plan) Materialize(target model.TargetRef) ([]model.MaintenanceSchedule, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	schedules := make([]model.MaintenanceSchedule, 0, len(p.Schedules))
	for _, spec := range p.Schedules {
		schedules = append(schedules, model.MaintenanceSchedule{
			Kind:        spec.Kind,
			Target:      target,
			Title:       spec.Title,
			Description: spec.Description,
			Interval: model.Interval{
				Type:  spec.IntervalType,
				Value: spec.IntervalValue,
			},
			CostEstimate: spec.CostEstimate,
			Active:       true,
		})
	}
	return schedules, nil
}
