package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/linskybing/genie-forms/internal/config"
	"github.com/spf13/cobra"
)

var errInvalidPayload = errors.New("payload is invalid")

func newFormsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "List and validate form definitions",
	}
	cmd.AddCommand(newFormsListCmd(opts))
	cmd.AddCommand(newFormsValidateCmd(opts))
	return cmd
}

func newFormsListCmd(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print form ids, titles and field counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			enabled := make(map[string]bool)
			for _, id := range config.EnabledForms {
				enabled[id] = true
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tFIELDS\tENABLED")
			for _, def := range reg.All() {
				on := enabled["*"] || enabled[def.ID]
				if !all && !on {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", def.ID, def.Title, def.ValueFieldCount(), on)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include forms not listed in ENABLED_FORMS")
	return cmd
}

func newFormsValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <form-id> <file.json>",
		Short: "Validate a JSON payload against a form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			def, ok := reg.Lookup(args[0])
			if !ok {
				return fmt.Errorf("form %q not found", args[0])
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var values map[string]any
			if err := json.Unmarshal(raw, &values); err != nil {
				return fmt.Errorf("parse %s: %w", args[1], err)
			}

			_, errs := def.Validate(values)
			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintf(out, "%s: valid\n", def.ID)
				return nil
			}

			names := make([]string, 0, len(errs))
			for name := range errs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, msg := range errs[name] {
					fmt.Fprintf(out, "%s: %s\n", name, msg)
				}
			}
			return errInvalidPayload
		},
	}
}
