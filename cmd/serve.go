package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/abhisek/homeworkpal/internal/logging"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quest API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		logger, err := logging.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStack(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		engine := s.tutor()
		srv := server.New(server.Deps{
			Assignments: s.assignments,
			Sessions:    play.NewRegistry(s.playDeps(engine)),
			Tutor:       engine,
			Designer:    s.designer(),
			Logger:      logger,
		}, server.Options{
			Addr:        cfg.HTTPAddr,
			CORSOrigins: cfg.CORSOrigins,
		})

		logger.Info("serving",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("backend", cfg.Backend),
			zap.String("strategy", cfg.Strategy))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HOMEWORKPAL_HTTP_ADDR)")
}
