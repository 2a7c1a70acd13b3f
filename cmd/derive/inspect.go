package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askiada/go-derive/pkg/registry"
)

func newFingerprintCmd(state *app) *cobra.Command {
	var pipelinePath string

	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint and hash of a pipeline definition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := registry.LoadDefinitionFile(pipelinePath)
			if err != nil {
				return err
			}

			just, err := state.registry.Build(def)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%016x %s\n", just.Hash(), just.Fingerprint())

			return nil
		},
	}

	cmd.Flags().StringVar(&pipelinePath, "pipeline", "", "pipeline definition file")
	_ = cmd.MarkFlagRequired("pipeline")

	return cmd
}

func newStepsCmd(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the steps usable in pipeline definitions",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range state.registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
