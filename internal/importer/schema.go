package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanFile is the top-level YAML structure for plan import.
type PlanFile struct {
	Plan       string            `yaml:"plan"`
	Containers []ContainerImport `yaml:"containers"`
	Items      []ItemImport      `yaml:"items"`
}

// ContainerImport defines a sprint or person in the import file.
type ContainerImport struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind,omitempty"`
	Capacity float64 `yaml:"capacity"`
	Start    string  `yaml:"start,omitempty"`
	End      string  `yaml:"end,omitempty"`
}

// ItemImport defines a work item in the import file. Ref is a file-local
// handle; depends_on and nothing else refers to it.
type ItemImport struct {
	Ref       string   `yaml:"ref"`
	Title     string   `yaml:"title"`
	Kind      string   `yaml:"kind,omitempty"`
	Status    string   `yaml:"status,omitempty"`
	Priority  string   `yaml:"priority,omitempty"`
	Points    float64  `yaml:"points"`
	Project   string   `yaml:"project,omitempty"`
	Container string   `yaml:"container,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// LoadPlanFile reads and parses a plan import YAML file.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &file, nil
}
