package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/homeworkpal/internal/app"
	"github.com/abhisek/homeworkpal/internal/logging"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger, err := logging.ToFile(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	s, err := openStack(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.provider == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured: the tutor will use built-in feedback.")
	}

	return app.Run(cmd.Context(), app.Options{
		Quests:   s.assignments,
		Sessions: play.NewRegistry(s.playDeps(s.tutor())),
		Logger:   logger,
	})
}
