package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/corpus"
	"github.com/fairhire/biasprobe/internal/logger"
	"github.com/fairhire/biasprobe/internal/resume"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a demographically varied resume corpus",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "resumes.jsonl", "output file for the generated corpus")
	generateCmd.Flags().Int64("base-seed", 0, "override the plan's base seed")

	viper.BindPFlag("corpus.base-seed", generateCmd.Flags().Lookup("base-seed"))
}

func generate(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Corpus == nil {
		logger.Fatal("a corpus plan is required under the 'corpus' key")
	}

	plan := *config.Corpus
	logger.Info("generating corpus",
		zap.Int("contexts", len(plan.Contexts)),
		zap.Int("replicates", plan.Replicates),
		zap.Int64("base_seed", plan.BaseSeed),
	)

	resumes, err := resume.GeneratePlan(plan)
	if err != nil {
		logger.Fatal("generating resumes", zap.Error(err))
	}

	output := cmd.Flag("output").Value.String()
	if err := corpus.WriteResumes(output, resumes); err != nil {
		logger.Fatal("writing corpus", zap.Error(err))
	}

	logger.Info("corpus written",
		zap.String("output", output),
		zap.Int("resumes", len(resumes)),
	)
}
