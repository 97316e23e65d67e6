// Command formctl inspects form definitions and previews notifications
// without running the API server.
package main

import (
	"fmt"
	"os"

	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/forms"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	formsDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:               "formctl <command> [flags]",
		Short:             "Genie forms operator tool",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("forms-dir") {
				opts.formsDir = config.FormsDir
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.formsDir, "forms-dir", "", "directory of YAML/JSON form definitions (default $FORMS_DIR)")

	cmd.AddCommand(newFormsCmd(opts))
	cmd.AddCommand(newEmailCmd())
	cmd.AddCommand(newSuggestCmd())
	return cmd
}

// registry loads the built-in forms plus opts.formsDir with every form
// enabled, so operators can inspect disabled ones too.
func (o *rootOptions) registry() (*forms.Registry, error) {
	reg := forms.NewRegistry([]string{"*"}, nil)
	if o.formsDir == "" {
		return reg, nil
	}
	if err := reg.Reload(o.formsDir); err != nil {
		return nil, fmt.Errorf("load %s: %w", o.formsDir, err)
	}
	return reg, nil
}

func main() {
	config.LoadConfig()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
