package registry

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Definition describes a pipeline in configuration files:
//
//	name: age-histogram
//	steps:
//	  - use: column
//	    with: {dimension: age, filter: "country == 'FR'"}
//	  - use: numeric
//	  - use: histogram
//	    with: {bins: 10}
type Definition struct {
	Name  string    `yaml:"name"`
	Steps []StepDef `yaml:"steps"`
}

// StepDef is a step of a Definition.
type StepDef struct {
	// Use is the registered step name.
	Use string `yaml:"use"`
	// With holds the step parameters.
	With yaml.Node `yaml:"with,omitempty"`
}

// LoadDefinition decodes a YAML definition.
func LoadDefinition(rdr io.Reader) (Definition, error) {
	var def Definition

	err := yaml.NewDecoder(rdr).Decode(&def)
	if err != nil {
		return Definition{}, errors.Wrap(err, "unable to decode pipeline definition")
	}

	return def, nil
}

// LoadDefinitionFile decodes the YAML definition at path.
func LoadDefinitionFile(path string) (Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return Definition{}, errors.Wrapf(err, "unable to open pipeline definition %s", path)
	}
	defer file.Close()

	return LoadDefinition(file)
}
