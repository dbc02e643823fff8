// Command prep runs the preprocessing pipeline over a CSV, TSV, or Excel
// file and writes the result as JSON.
//
// Usage:
//
//	prep data.csv
//	prep --options options.json --output clean.json data.xlsx
//	prep --summary data.csv
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dataprep/internal/config"
	"dataprep/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "prep:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		optionsArg string
		outputPath string
		pretty     bool
		summary    bool
	)

	cmd := &cobra.Command{
		Use:           "prep FILE",
		Short:         "Clean and preprocess tabular data files",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(optionsArg)
			if err != nil {
				return err
			}

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res, err := pipeline.Preprocess(buf, args[0], opts)
			if err != nil {
				return err
			}

			if summary {
				printSummary(cmd.ErrOrStderr(), res)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&optionsArg, "options", "", "pipeline options: inline JSON or a path to a JSON file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&summary, "summary", false, "print issues and statistics to stderr")
	return cmd
}

// loadOptions accepts either inline JSON (starts with '{') or a path to a
// JSON file; empty means defaults.
func loadOptions(arg string) (config.Options, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return config.Default(), nil
	}
	data := []byte(arg)
	if !strings.HasPrefix(arg, "{") {
		var err error
		data, err = os.ReadFile(arg)
		if err != nil {
			return config.Options{}, err
		}
	}
	return config.FromJSON(data)
}

func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "rows: %d in, %d out (%d removed)\n", res.OriginalRows, res.ProcessedRows, res.RemovedRows)
	fmt.Fprintf(w, "quality score: %.1f\n", res.Statistics.DataQualityScore)
	for _, is := range res.Issues {
		fmt.Fprintf(w, "issue [%s] %s: %s\n", is.Severity, is.Kind, is.Description)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "suggestion: %s\n", s)
	}
}
