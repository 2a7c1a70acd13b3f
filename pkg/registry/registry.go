// Package registry builds pipeline definitions from step names, so that pipelines
// can be described in configuration files.
package registry

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-derive/pkg/pipeline"
)

var (
	ErrUnknownStep   = errors.New("unknown step")
	ErrDuplicateStep = errors.New("step already registered")
	ErrInvalidName   = errors.New("step name must be set")
)

// Factory builds a stage from its parameters. params is nil when the step has none.
type Factory func(params *yaml.Node) (pipeline.Stage, error)

// Registry maps step names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return ErrInvalidName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return errors.Wrap(ErrDuplicateStep, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	err := r.Register(name, factory)
	if err != nil {
		panic(err)
	}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Stage builds the step called name.
func (r *Registry) Stage(name string, params *yaml.Node) (pipeline.Stage, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return pipeline.Stage{}, errors.Wrap(ErrUnknownStep, name)
	}

	if params != nil && params.Kind == 0 {
		params = nil
	}

	stage, err := factory(params)
	if err != nil {
		return pipeline.Stage{}, errors.Wrapf(err, "unable to build step %s", name)
	}

	return stage, nil
}

// Build turns def into a pipeline definition, checking that its steps chain.
func (r *Registry) Build(def Definition) (pipeline.JustPipeline[any, any], error) {
	stages := make([]pipeline.Stage, len(def.Steps))

	for idx, step := range def.Steps {
		params := step.With

		stage, err := r.Stage(step.Use, &params)
		if err != nil {
			return pipeline.JustPipeline[any, any]{}, errors.Wrapf(err, "step %d", idx)
		}

		stages[idx] = stage
	}

	just, err := pipeline.FromStages(stages...)
	if err != nil {
		return pipeline.JustPipeline[any, any]{}, errors.Wrapf(err, "pipeline %s", def.Name)
	}

	return just, nil
}

// Of adapts a step constructor into a factory decoding its parameters.
func Of[P comparable, I, O any](ctor func(P) pipeline.Step[P, I, O]) Factory {
	return func(params *yaml.Node) (pipeline.Stage, error) {
		decoded, err := Decode[P](params)
		if err != nil {
			return pipeline.Stage{}, err
		}

		return pipeline.Erase(ctor(decoded)), nil
	}
}

// Decode decodes params into a P. Nil params give the zero P.
func Decode[P any](params *yaml.Node) (P, error) {
	var decoded P
	if params == nil {
		return decoded, nil
	}

	err := params.Decode(&decoded)
	if err != nil {
		return decoded, errors.Wrap(err, "unable to decode parameters")
	}

	return decoded, nil
}
