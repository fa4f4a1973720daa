package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talentscout"
)

type Config struct {
	LLM       *LLMConfig       `mapstructure:"llm" validate:"required"`
	Storage   *StorageConfig   `mapstructure:"storage" validate:"required"`
	Interview *InterviewConfig `mapstructure:"interview" validate:"required"`
	ExportDir string           `mapstructure:"export-dir"`
}

type LLMConfig struct {
	Provider  string        `mapstructure:"provider" validate:"oneof=gemini ollama none"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxTokens int           `mapstructure:"max-tokens" validate:"min=1"`
	Gemini    *GeminiConfig `mapstructure:"gemini" validate:"required"`
	Ollama    *OllamaConfig `mapstructure:"ollama" validate:"required"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries" validate:"min=0"`
}

type OllamaConfig struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Model string `mapstructure:"model"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=file sqlite postgres"`
	Dir         string `mapstructure:"dir"`
	SQLitePath  string `mapstructure:"sqlite-path"`
	PostgresURL string `mapstructure:"postgres-url" validate:"required_if=Driver postgres"`
}

type InterviewConfig struct {
	ExitPolicy string `mapstructure:"exit-policy" validate:"oneof=exact substring"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is a terminal hiring assistant that screens candidates with an LLM",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	binds := map[string]string{
		"llm.provider":            "LLM_PROVIDER",
		"llm.gemini.api-key":      "GEMINI_API_KEY",
		"llm.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"llm.ollama.url":          "OLLAMA_URL",
		"llm.ollama.model":        "OLLAMA_MODEL",
		"storage.driver":          "STORAGE_DRIVER",
		"storage.postgres-url":    "DATABASE_URL",
		"interview.exit-policy":   "EXIT_POLICY",
	}
	for key, env := range binds {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max-tokens", 500)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.gemini.max-retries", 3)
	v.SetDefault("llm.ollama.url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "mistral")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.sqlite-path", "data/talentscout.db")
	v.SetDefault("interview.exit-policy", "exact")
	v.SetDefault("export-dir", ".")
}

func initConfig() {
	// A missing .env is normal; variables may come from the real environment.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every key has a default, so the config file is optional unless named explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is required")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
