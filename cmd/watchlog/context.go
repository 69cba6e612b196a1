package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"watchlog/internal/config"
	"watchlog/internal/kvstore"
	"watchlog/internal/logging"
	"watchlog/internal/preferences"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// JSONMode reports whether --json was given.
func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// newCLILogger builds the command logger. Console output goes to w; the
// optional log file from config is always written.
func (c *commandContext) newCLILogger(cfg *config.Config, cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	runCtx := logging.WithCommand(commandRunContext(cmd), cmd.CommandPath())
	runCtx = logging.WithCorrelationID(runCtx, uuid.NewString())
	return logging.WithContext(runCtx, logger), nil
}

// session bundles what a command needs to work on the watch list.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	kv     kvstore.Store
	store  *watchlist.Store
}

func (s *session) theme() *preferences.Theme {
	return preferences.NewTheme(s.kv)
}

// withStore opens the locked key-value store and the entry store for the
// duration of fn.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(*session) error) error {
	return c.withStoreLogging(cmd, cmd.ErrOrStderr(), fn)
}

func (c *commandContext) withStoreLogging(cmd *cobra.Command, logOutput io.Writer, fn func(*session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newCLILogger(cfg, cmd, logOutput)
	if err != nil {
		return err
	}
	runCtx := commandRunContext(cmd)

	kv, err := kvstore.Open(runCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	store, err := watchlist.Open(runCtx, kv, logger)
	if err != nil {
		return fmt.Errorf("open watch list: %w", err)
	}
	return fn(&session{cfg: cfg, logger: logger, kv: kv, store: store})
}

func (c *commandContext) tmdbClient(cfg *config.Config, logger *slog.Logger) (*tmdb.Client, error) {
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL,
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRetryAttempts(cfg.TMDB.RetryAttempts),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		tmdb.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create tmdb client: %w", err)
	}
	return client, nil
}

func commandRunContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
