package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/export"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export <candidate-id>",
	Short: "Export a stored interview transcript as JSON",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("export-dir", cmd.Flags().Lookup("export-dir"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		defer logger.Sync()

		config, err := getConfig()
		if err != nil {
			return fmt.Errorf("getting a config: %w", err)
		}

		path, err := exportStored(cmd.Context(), config, args[0], time.Now(), logger)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("export-dir", "o", "", "directory for the exported transcript")
}

// exportStored writes the latest stored interview of candidateID to the export directory.
func exportStored(ctx context.Context, config *Config, candidateID string, now time.Time, logger *zap.Logger) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	candidateID = strings.ToUpper(strings.TrimSpace(candidateID))

	store, err := storage.Open(ctx, storageConfig(config.Storage), logger)
	if err != nil {
		return "", fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	candidate, err := store.Candidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("no stored interview for candidate %s", candidateID)
		}
		return "", err
	}

	transcript, err := store.Transcript(ctx, candidateID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("candidate has no stored transcript", zap.String("candidate_id", candidateID))
	}

	doc, err := export.FromStored(candidate, transcript, now)
	if err != nil {
		return "", err
	}

	path, err := export.WriteFile(config.ExportDir, doc, now)
	if err != nil {
		return "", err
	}

	logger.Info("exported interview", zap.String("candidate_id", candidateID), zap.String("file", path))
	return path, nil
}
