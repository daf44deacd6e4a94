package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/analysis"
	"github.com/fairhire/biasprobe/internal/corpus"
	"github.com/fairhire/biasprobe/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute bias statistics from score records",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("scores", "s", "scores.jsonl", "input score records file")
	analyzeCmd.Flags().StringP("output", "o", "", "report file (default is stdout)")
	analyzeCmd.Flags().StringP("by", "b", "", "restrict the report to one dimension: gender, age_bracket or region")
	analyzeCmd.Flags().Int("min-sample", 0, "smallest per-group sample a test runs on")

	viper.BindPFlag("analysis.min-sample-size", analyzeCmd.Flags().Lookup("min-sample"))
}

func analyze(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	var cfg analysis.Config
	if config != nil && config.Analysis != nil {
		cfg = *config.Analysis
	}

	records, err := corpus.ReadRecords(cmd.Flag("scores").Value.String())
	if err != nil {
		logger.Fatal("reading score records", zap.Error(err))
	}
	if len(records) == 0 {
		logger.Fatal("no score records found", zap.String("hint", "run the score command first"))
	}

	report := analysis.Analyze(records, cfg)
	if by := cmd.Flag("by").Value.String(); by != "" {
		dim := analysis.Dimension(by)
		if !slices.Contains(analysis.AllDimensions, dim) {
			logger.Fatal("unknown dimension", zap.String("by", by))
		}
		filtered := report.Comparisons[:0]
		for _, cmp := range report.Comparisons {
			if cmp.Dimension == dim {
				filtered = append(filtered, cmp)
			}
		}
		report.Comparisons = filtered
	}

	logger.Info("analysis finished",
		zap.Int("records", report.Records),
		zap.Int("used", report.Used),
		zap.Int("comparisons", len(report.Comparisons)),
	)

	pretty, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	pretty = append(pretty, '\n')

	output := cmd.Flag("output").Value.String()
	if output == "" {
		fmt.Print(string(pretty))
		return
	}
	if err := os.WriteFile(output, pretty, 0o644); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
	logger.Info("report written", zap.String("output", output))
}
