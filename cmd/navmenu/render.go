package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the rendered menu for a route as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.build(cmd.Context(), route)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(m.ToTemplate()); err != nil {
				return fmt.Errorf("failed to encode menu: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&route, "route", "r", "/", "active route")
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the menu tree for a route, active items marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.build(cmd.Context(), route)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), m.Print())
			return nil
		},
	}

	cmd.Flags().StringVarP(&route, "route", "r", "/", "active route")
	return cmd
}
