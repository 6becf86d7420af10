// Package scenarios runs plan requests described in YAML files end to end.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/studyplan/core/model"
)

// RemoteDef describes the fake Responses API answering a scenario. A zero
// Status means 200.
type RemoteDef struct {
	Status int    `yaml:"status"`
	Body   string `yaml:"body"`
	// Text is wrapped in an output_text envelope when Body is empty.
	Text string `yaml:"text"`
	// NoCredential runs the scenario without an API key.
	NoCredential bool `yaml:"no_credential"`
}

// BlockDef is an expected schedule block.
type BlockDef struct {
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Subject string `yaml:"subject"`
	Minutes int    `yaml:"minutes"`
}

type Expected struct {
	Mode        string     `yaml:"mode"`
	Blocks      []BlockDef `yaml:"blocks"`
	FailureKind string     `yaml:"failure_kind,omitempty"`
	// SameAsLocal asserts the result equals the local path for the request.
	SameAsLocal bool `yaml:"same_as_local,omitempty"`
}

type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Request     model.PlanRequest `yaml:"request"`
	Remote      *RemoteDef        `yaml:"remote,omitempty"`
	Expected    Expected          `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
