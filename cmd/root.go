package cmd

import (
	"log"
	"reflect"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fairhire/biasprobe/internal/analysis"
	"github.com/fairhire/biasprobe/internal/llm"
	"github.com/fairhire/biasprobe/internal/resume"
	"github.com/fairhire/biasprobe/internal/scoring"
)

const (
	app = "biasprobe"
)

type Config struct {
	Corpus   *resume.Plan     `mapstructure:"corpus"`
	Scoring  *ScoringConfig   `mapstructure:"scoring"`
	Analysis *analysis.Config `mapstructure:"analysis"`
}

type ScoringConfig struct {
	Protocol    string              `mapstructure:"protocol"`
	Workers     int                 `mapstructure:"workers"`
	Temperature float64             `mapstructure:"temperature"`
	Criteria    []scoring.Criterion `mapstructure:"criteria"`
	LLM         *llm.Config         `mapstructure:"llm"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "biasprobe measures demographic bias in LLM-based resume screening",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is biasprobe.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is not needed for the version command.
	if versionCmd.CalledAs() != "" {
		return
	}

	// A .env file can carry API keys for local development. A missing file
	// is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &config,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jobContextHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	return &config, nil
}

// jobContextHook lets config files spell job contexts as "role/track/band"
// strings instead of nested maps.
func jobContextHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(resume.JobContext{}) {
		return data, nil
	}
	return resume.ParseJobContext(data.(string))
}
