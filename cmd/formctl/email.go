package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/domain/marketing"
	"github.com/linskybing/genie-forms/internal/notify"
	"github.com/spf13/cobra"
)

func newEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Work with notification emails",
	}
	cmd.AddCommand(newEmailPreviewCmd())
	return cmd
}

func newEmailPreviewCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview <file.json>",
		Short: "Render the marketing email for a payload without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var data marketing.EmailData
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if data.ActivityType == "" {
				data.ActivityType = marketing.ActivityOnceOff
			}

			html, err := notify.RenderMarketingEmail(data, nil, time.Local)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Subject: %s\n", notify.MarketingSubject(data.ActivityType, false, config.DemoMode))

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			return os.WriteFile(output, []byte(html), 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the HTML to this file")
	return cmd
}
