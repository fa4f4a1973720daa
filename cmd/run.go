package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/ai/gemini"
	"github.com/spigell/talentscout/internal/ai/ollama"
	"github.com/spigell/talentscout/internal/console"
	"github.com/spigell/talentscout/internal/export"
	"github.com/spigell/talentscout/internal/interview"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/secrets"
	"github.com/spigell/talentscout/internal/storage"
	"github.com/spigell/talentscout/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	inputLabel = "You"
	menuLabel  = "What next?"
)

var errQuit = errors.New("quit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive interview",
	PreRun: func(cmd *cobra.Command, _ []string) {
		// export-dir is shared with the export command, so bind it only for the one that runs.
		viper.BindPFlag("export-dir", cmd.Flags().Lookup("export-dir"))
	},
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("provider", "p", "", "LLM provider: gemini, ollama or none")
	runCmd.Flags().StringP("export-dir", "o", "", "directory for downloaded transcripts")

	viper.BindPFlag("llm.provider", runCmd.Flags().Lookup("provider"))
}

// run is the interactive interview loop.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	generator, err := newGenerator(ctx, config.LLM, logger)
	if err != nil {
		logger.Warn("language model is unavailable, answers will be placeholders", zap.Error(err))
		generator = ai.Unavailable{Reason: err.Error()}
	}

	store, err := storage.Open(ctx, storageConfig(config.Storage), logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err), zap.String("driver", config.Storage.Driver))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
	}()

	policy, err := interview.ParseExitPolicy(config.Interview.ExitPolicy)
	if err != nil {
		logger.Fatal("parsing exit policy", zap.Error(err))
	}

	deps := interview.Deps{
		Generator: generator,
		Store:     store,
		Language:  telemetry.NewLanguageDetector(),
		Sentiment: telemetry.NewSentimentScorer(),
		Logger:    logger,
	}
	opts := interview.Options{
		ExitPolicy: policy,
		MaxTokens:  config.LLM.MaxTokens,
		Timeout:    config.LLM.Timeout,
	}

	out := console.New(os.Stdout, console.IsTerminal(os.Stdout))
	var prompter console.Prompter = console.Terminal{}

	for {
		session := interview.NewSession(deps, opts)
		if err := conduct(ctx, session, out, prompter); err != nil {
			logger.Fatal("interview failed", zap.Error(err))
		}

		if err := afterInterview(session, out, prompter, config.ExportDir, logger); err != nil {
			if errors.Is(err, errQuit) {
				logger.Info("exiting", zap.String("reason", "quit from menu"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// conduct runs one session until it concludes. Ctrl-C or Ctrl-D ends the
// interview the same way an exit keyword does.
func conduct(ctx context.Context, session *interview.Session, out *console.Console, prompter console.Prompter) error {
	out.Markdown(interview.PrivacyNotice)
	out.Messages(session.Start())

	for session.Active() {
		out.Progress(session.Stage())

		input, err := prompter.Ask(inputLabel)
		if errors.Is(err, console.ErrAborted) {
			out.Messages(session.End(ctx))
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		messages, err := session.Submit(ctx, input)
		if err != nil {
			return err
		}
		out.Messages(messages)
	}

	out.Status(statusView(session))
	if id := session.CandidateID(); id != "" {
		out.Info("Saved as candidate %s", id)
	}
	return nil
}

func afterInterview(session *interview.Session, out *console.Console, prompter console.Prompter, exportDir string, logger *zap.Logger) error {
	for {
		choice, err := prompter.Choose(menuLabel, console.MenuItems)
		if errors.Is(err, console.ErrAborted) {
			return errQuit
		}
		if err != nil {
			return err
		}

		switch choice {
		case console.MenuDownload:
			now := time.Now()
			doc, err := export.Build(session.Record(), session.Transcript(), now)
			if err != nil {
				return fmt.Errorf("building export: %w", err)
			}
			path, err := export.WriteFile(exportDir, doc, now)
			if err != nil {
				logger.Error("writing export", zap.Error(err))
				continue
			}
			out.Info("Transcript written to %s", path)
		case console.MenuNewInterview:
			return nil
		case console.MenuQuit:
			return errQuit
		default:
			return fmt.Errorf("invalid action: %s", choice)
		}
	}
}

func statusView(s *interview.Session) console.StatusView {
	return console.StatusView{
		Stage:     s.Stage(),
		Record:    s.Record(),
		Language:  s.Language(),
		Sentiment: s.SentimentScores(),
		Questions: len(s.Questions()),
		Answered:  s.QuestionIndex(),
	}
}

func newGenerator(ctx context.Context, cfg *LLMConfig, baseLogger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set llm.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		genLogger := logger.WithFields(
			logger.WithCommonFields(baseLogger, provider, cfg.Gemini.Model),
			zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
		)
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case "ollama":
		return ollama.New(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Timeout,
			logger.WithCommonFields(baseLogger, provider, cfg.Ollama.Model)), nil
	case "none", "":
		return nil, errors.New("no language model provider configured")
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

func storageConfig(cfg *StorageConfig) storage.Config {
	return storage.Config{
		Driver:      cfg.Driver,
		Dir:         cfg.Dir,
		SQLitePath:  cfg.SQLitePath,
		PostgresURL: cfg.PostgresURL,
	}
}

// redacted copies config with secrets blanked for debug output.
func redacted(config *Config) Config {
	out := *config
	if config.LLM != nil && config.LLM.Gemini != nil {
		llm := *config.LLM
		gem := *config.LLM.Gemini
		if gem.APIKey != "" {
			gem.APIKey = "***"
		}
		llm.Gemini = &gem
		out.LLM = &llm
	}
	if config.Storage != nil && config.Storage.PostgresURL != "" {
		st := *config.Storage
		st.PostgresURL = "***"
		out.Storage = &st
	}
	return out
}
