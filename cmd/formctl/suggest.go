package main

import (
	"encoding/json"

	"github.com/linskybing/genie-forms/internal/application"
	"github.com/linskybing/genie-forms/internal/domain/suggestion"
	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	var req suggestion.MeasurementRequest
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Run the keyword measurement scorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewSuggestionService(nil, nil)
			resp := svc.SuggestMeasurements(req)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVar(&req.Background, "background", "", "background text")
	cmd.Flags().StringVar(&req.Objectives, "objectives", "", "objectives text")
	cmd.Flags().StringSliceVar(&req.Current, "current", nil, "measurements already selected")
	return cmd
}
