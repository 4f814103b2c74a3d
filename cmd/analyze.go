package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amish-gaur/DataPriv/internal/types"
)

// analyzeCmd runs a single analysis from the command line and prints the result
var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain>",
	Short: "analyze the privacy policy of a domain and print the result as json",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := analyze(cmd.Context(), cmd.OutOrStdout(), args[0])
		cobra.CheckErr(err)
	},
}

// init registers the analyze command and its flags
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSlice("candidate", nil, "candidate policy url, may be repeated")
}

// analyze runs the pipeline once for the domain and writes the indented JSON result to out
func analyze(ctx context.Context, out io.Writer, domain string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := setupAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	defer cleanup()

	if cfg.Analyzer.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Analyzer.Timeout)
		defer cancel()
	}

	result, err := svc.Analyze(ctx, types.AnalysisRequest{
		Domain:        domain,
		CandidateURLs: k.Strings("candidate"),
	})
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", domain, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}
