package analytics

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type document struct {
	Dimensions []Dimension                  `yaml:"dimensions"`
	Datasets   map[DatasetRole][]eventEntry `yaml:"datasets"`
}

type eventEntry struct {
	ID        string         `yaml:"id"`
	Timestamp time.Time      `yaml:"timestamp"`
	Values    map[string]any `yaml:"values"`
}

// LoadModel reads a YAML model document:
//
//	dimensions:
//	  - {name: age, type: feature, data_type: numeric}
//	datasets:
//	  primary:
//	    - {id: e1, timestamp: 2024-01-02T03:04:05Z, values: {age: 42}}
func LoadModel(rdr io.Reader) (*MemoryModel, error) {
	var doc document

	err := yaml.NewDecoder(rdr).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode model")
	}

	m, err := NewMemoryModel(doc.Dimensions...)
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(doc.Datasets))
	for role := range doc.Datasets {
		roles = append(roles, string(role))
	}

	sort.Strings(roles)

	for _, role := range roles {
		entries := doc.Datasets[DatasetRole(role)]

		events := make([]Event, len(entries))
		for i, entry := range entries {
			events[i] = Event(entry)
		}

		err = m.AddEvents(DatasetRole(role), events...)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load dataset %s", role)
		}
	}

	return m, nil
}

// LoadModelFile reads a YAML model document from path.
func LoadModelFile(path string) (*MemoryModel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open model %s", path)
	}
	defer file.Close()

	return LoadModel(file)
}
