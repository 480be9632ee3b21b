package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/agentbrief/internal/config"
	"github.com/abhisek/agentbrief/internal/enhance"
	"github.com/abhisek/agentbrief/internal/llm"
	"github.com/abhisek/agentbrief/internal/store"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agentbrief",
	Short: "Generate AI coding assistant configs from project answers",
	Long: `agentbrief turns questionnaire answers into a configuration document for an
AI coding assistant: a role, a security guardrail tier, skill packs, and a
phased build sequence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := zap.NewProductionConfig()
		if verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/agentbrief/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "History database: SQLite path or postgres:// URL (overrides AGENTBRIEF_DB)")

	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// resolveDBPath returns the database DSN using --db flag (highest priority),
// then the configured store DSN (file or AGENTBRIEF_DB), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.DSN != "" {
		return cfg.Store.DSN, store.EnsureDir(cfg.Store.DSN)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newEnhancer returns nil when enhancement is off. A missing provider is
// logged and treated the same way, so derivation never fails on it.
func newEnhancer(ctx context.Context, enabled bool, repo store.EventRepo) enhance.Enhancer {
	if !enabled {
		return nil
	}
	llmCfg := cfg.LLMProvider()
	provider, err := llm.NewProvider(ctx, llmCfg, repo, logger)
	if err != nil {
		logger.Warn("enhancement disabled", zap.Error(err))
		return nil
	}
	svc, err := enhance.NewService(provider, enhance.Config{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		CacheSize:   cfg.LLM.CacheSize,
	}, logger)
	if err != nil {
		logger.Warn("enhancement disabled", zap.Error(err))
		return nil
	}
	return svc
}
