package netmon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"statusbus/internal/domain"
	"statusbus/internal/domain/events"
)

// Step is one status transition in a scenario.
type Step struct {
	// Status is the link status to broadcast. Must be a member of the
	// closed network status set.
	Status events.NetworkStatus `yaml:"status"`

	// HoldMS is how long to hold this status before the next step.
	// Zero means the monitor's default hold applies.
	HoldMS int `yaml:"hold_ms"`
}

// Scenario is a scripted sequence of link status transitions.
type Scenario struct {
	// Loop restarts the sequence after the last step.
	Loop bool `yaml:"loop"`

	// Steps are played in order.
	Steps []Step `yaml:"steps"`
}

// DefaultScenario returns the built-in link flap cycle used when no
// scenario file is configured.
func DefaultScenario() *Scenario {
	return &Scenario{
		Loop: true,
		Steps: []Step{
			{Status: events.StatusConnecting},
			{Status: events.StatusConnected},
			{Status: events.StatusDisconnecting},
			{Status: events.StatusDisconnected},
		},
	}
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewScenarioError(path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, domain.NewScenarioError(path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, domain.NewScenarioError(path, err)
	}

	return &sc, nil
}

// Validate checks that the scenario has steps and every status is a
// member of the closed set.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return domain.ErrEmptyScenario
	}
	for i, step := range s.Steps {
		if !step.Status.Valid() {
			return fmt.Errorf("step %d: unknown status %q", i, step.Status)
		}
		if step.HoldMS < 0 {
			return fmt.Errorf("step %d: hold_ms must not be negative", i)
		}
	}
	return nil
}
