package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/askiada/go-derive/pkg/analytics"
	"github.com/askiada/go-derive/pkg/pipeline"
	"github.com/askiada/go-derive/pkg/pipeline/drawer"
	"github.com/askiada/go-derive/pkg/pipeline/measure"
	"github.com/askiada/go-derive/pkg/pipeline/model"
	"github.com/askiada/go-derive/pkg/registry"
)

type runOptions struct {
	models       []string
	pipelinePath string
	start, stop  int
	dotPath      string
}

func newRunCmd(state *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline over one or more models",
		Long: `Run the pipeline definition over each model and print the results as JSON.

--start and --stop select a range of steps, negative values counting from the end.
Several models are processed concurrently, up to batch_limit at once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, state, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.models, "model", nil, "model file, repeatable")
	cmd.Flags().StringVar(&opts.pipelinePath, "pipeline", "", "pipeline definition file")
	cmd.Flags().IntVar(&opts.start, "start", 0, "first step to run")
	cmd.Flags().IntVar(&opts.stop, "stop", 0, "step to stop before (default: run to the end)")
	cmd.Flags().StringVar(&opts.dotPath, "dot", "", "write the DOT graph of the pipeline, with timings, to this file")

	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("pipeline")

	return cmd
}

func runPipeline(cmd *cobra.Command, state *app, opts *runOptions) error {
	def, err := registry.LoadDefinitionFile(opts.pipelinePath)
	if err != nil {
		return err
	}

	just, err := state.registry.Build(def)
	if err != nil {
		return err
	}

	inputs := make([]any, len(opts.models))
	for idx, path := range opts.models {
		m, err := analytics.LoadModelFile(path)
		if err != nil {
			return err
		}

		inputs[idx] = m
	}

	msr := measure.NewDefaultMeasure()
	hooks := []model.Hook{model.LogHook(state.logger), measure.Hook(msr)}

	reg := prometheus.NewRegistry()
	if state.cfg.Metrics.Enabled {
		promHook, err := measure.NewPrometheusHook(reg, state.cfg.Metrics.Namespace)
		if err != nil {
			return err
		}

		hooks = append(hooks, promHook)
	}

	pipe := pipeline.New(just, pipeline.WithHooks(hooks...))
	ctx := cmd.Context()

	var results []any
	if cmd.Flags().Changed("start") || cmd.Flags().Changed("stop") {
		results, err = executeRange(ctx, pipe, inputs, opts, cmd.Flags().Changed("stop"))
	} else {
		results, err = pipeline.Batch(ctx, pipe, inputs, state.cfg.BatchLimit)
	}

	if err != nil {
		return err
	}

	err = printResults(cmd, results)
	if err != nil {
		return err
	}

	if opts.dotPath != "" {
		err = writeDOT(opts.dotPath, def.Name, just, msr)
		if err != nil {
			return err
		}
	}

	if state.cfg.Metrics.Enabled {
		return writeMetrics(cmd, reg)
	}

	return nil
}

func executeRange(ctx context.Context, pipe pipeline.Pipeline[any, any], inputs []any, opts *runOptions, hasStop bool) ([]any, error) {
	stop := pipe.Len()
	if hasStop {
		stop = opts.stop
	}

	results := make([]any, len(inputs))

	for idx, input := range inputs {
		res, err := pipe.ExecuteRange(ctx, input, opts.start, stop)
		if err != nil {
			return nil, err
		}

		results[idx] = res
	}

	return results, nil
}

func printResults(cmd *cobra.Command, results []any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}

	err := enc.Encode(out)
	if err != nil {
		return errors.Wrap(err, "unable to print results")
	}

	return nil
}

func writeDOT(path, name string, just pipeline.JustPipeline[any, any], msr measure.Measure) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", path)
	}
	defer file.Close()

	var opts []drawer.Option
	if name != "" {
		opts = append(opts, drawer.GraphAttribute("label", name))
	}

	return drawer.Render(file, just.Stages(), msr, opts...)
}

func writeMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "unable to gather metrics")
	}

	for _, family := range families {
		_, err = expfmt.MetricFamilyToText(cmd.ErrOrStderr(), family)
		if err != nil {
			return errors.Wrap(err, "unable to write metrics")
		}
	}

	return nil
}
