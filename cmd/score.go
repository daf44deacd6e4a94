package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/corpus"
	"github.com/fairhire/biasprobe/internal/llm"
	"github.com/fairhire/biasprobe/internal/llm/gemini"
	"github.com/fairhire/biasprobe/internal/llm/ollama"
	"github.com/fairhire/biasprobe/internal/logger"
	"github.com/fairhire/biasprobe/internal/resume"
	"github.com/fairhire/biasprobe/internal/scoring"
	"github.com/fairhire/biasprobe/internal/secrets"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume corpus against an LLM backend",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resumes", "r", "resumes.jsonl", "input corpus file")
	scoreCmd.Flags().StringP("scores", "s", "scores.jsonl", "output score records file, appended to on re-runs")
	scoreCmd.Flags().StringP("job-context", "c", "", "restrict the run to one role/track/band scenario")
	scoreCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before submitting to the backend")
	scoreCmd.Flags().StringP("protocol", "p", "", "scoring protocol: direct or metric")

	viper.BindPFlag("scoring.protocol", scoreCmd.Flags().Lookup("protocol"))
}

func score(cmd *cobra.Command) {
	// Interrupts cancel the run cooperatively: in-flight requests finish and
	// their records are persisted before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Scoring == nil || config.Scoring.LLM == nil {
		logger.Fatal("scoring configuration is required under the 'scoring' key")
	}
	cfg := config.Scoring

	logger.Info("starting the scoring run", zap.String("version", version))

	resumes, err := corpus.ReadResumes(cmd.Flag("resumes").Value.String())
	if err != nil {
		logger.Fatal("reading corpus", zap.Error(err))
	}
	logger.Info("corpus loaded", zap.Int("resumes", len(resumes)))

	scoresPath := cmd.Flag("scores").Value.String()
	previous, err := corpus.ReadRecords(scoresPath)
	if err != nil {
		logger.Fatal("reading previous records", zap.Error(err))
	}

	submitter, err := newSubmitter(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Fatal("building LLM backend", zap.Error(err))
	}
	client := llm.NewClient(submitter, *cfg.LLM, logger)

	protocol, err := newProtocol(cfg, logger)
	if err != nil {
		logger.Fatal("building scoring protocol", zap.Error(err))
	}

	runLogger := logger.With(scoringLogFields(client, protocol)...)

	// One output file holds one protocol; mixing would poison the analysis.
	for _, rec := range previous {
		if rec.Protocol != protocol.Kind() {
			logger.Fatal("scores file already holds records for another protocol",
				zap.String("file", scoresPath),
				zap.String("existing", string(rec.Protocol)),
				zap.String("requested", string(protocol.Kind())),
			)
		}
	}

	filters := []scoring.Filter{
		scoring.NewAlreadyScored(previous, protocol.Kind(), client.Backend()),
	}
	if jcFlag := strings.TrimSpace(cmd.Flag("job-context").Value.String()); jcFlag != "" {
		jc, err := resume.ParseJobContext(jcFlag)
		if err != nil {
			logger.Fatal("parsing job-context flag", zap.Error(err))
		}
		filters = append(filters, scoring.NewJobContext(jc))
	}

	pending, err := scoring.RunFilters(runLogger, filters, resumes)
	if err != nil {
		logger.Fatal("filtering corpus", zap.Error(err))
	}
	if len(pending) == 0 {
		runLogger.Info("exiting", zap.String("reason", "no resumes left to score"))
		return
	}

	runLogger.Info("resumes to score", zap.Int("count", len(pending)))

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			runLogger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	sink, err := corpus.OpenRecordWriter(scoresPath)
	if err != nil {
		logger.Fatal("opening records file", zap.Error(err))
	}
	defer sink.Close()

	runner := scoring.NewRunner(client, protocol, sink, cfg.Workers, runLogger)
	summary, err := runner.Run(ctx, pending)

	runLogger.Info("scoring run finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("pending", summary.Pending),
		zap.Any("failures", summary.Failures),
	)
	if err != nil {
		sink.Close()
		logger.Fatal("scoring run", zap.Error(err))
	}
	if summary.Succeeded == 0 {
		sink.Close()
		logger.Fatal("no resume scored successfully")
	}
}

func scoringLogFields(client *llm.Client, protocol scoring.Protocol) []zap.Field {
	return logger.ScoringFields(client.Backend(), client.Model(), string(protocol.Kind()))
}

// newSubmitter builds the configured backend.
func newSubmitter(ctx context.Context, cfg *llm.Config, log *zap.Logger) (llm.Submitter, error) {
	backend := strings.TrimSpace(strings.ToLower(cfg.Backend))
	switch backend {
	case "", "ollama":
		return ollama.New(cfg.BaseURL, cfg.Model, log), nil
	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.APIKeyFile,
			Env:  cfg.APIKeyEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set scoring.llm.api-key-file or scoring.llm.api-key-env)", err)
		}
		return gemini.New(ctx, apiKey, cfg.Model, log)
	default:
		return nil, fmt.Errorf("unsupported llm backend: %s", cfg.Backend)
	}
}

func newProtocol(cfg *ScoringConfig, log *zap.Logger) (scoring.Protocol, error) {
	switch strings.TrimSpace(strings.ToLower(cfg.Protocol)) {
	case "", "direct":
		return scoring.NewDirect(cfg.Temperature, log), nil
	case "metric":
		return scoring.NewMetric(cfg.Criteria, cfg.Temperature, log)
	default:
		return nil, fmt.Errorf("unsupported scoring protocol: %s", cfg.Protocol)
	}
}
