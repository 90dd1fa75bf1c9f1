package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	googletrans "github.com/chrk623/google-trans2"

	"github.com/chrk623/google-trans2/internal/cli"
	"github.com/chrk623/google-trans2/internal/config"
	"github.com/chrk623/google-trans2/internal/logging"
	"github.com/chrk623/google-trans2/internal/translation"
)

// runtime bundles the pieces every command needs once configured.
type runtime struct {
	cfg     *config.Config
	logger  zerolog.Logger
	manager *translation.Manager
}

// setupRuntime loads the environment, configuration and logger, then wires
// the translation providers into a manager.
func setupRuntime(envLoader *cli.EnvLoader) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	manager, err := buildManager(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, manager: manager}, nil
}

// buildManager constructs the translate client and registers every provider.
func buildManager(cfg *config.Config, logger zerolog.Logger) (*translation.Manager, error) {
	client, err := googletrans.New(googletrans.Config{
		URLSuffix:         cfg.URLSuffix,
		Timeout:           cfg.Timeout(),
		Proxy:             cfg.ProxyMap(),
		GenerateUserAgent: cfg.GenerateUserAgent,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build translate client: %w", err)
	}

	registry := translation.NewRegistry(cfg.Provider)
	if err := registry.Register(translation.NewGoogleProvider(client)); err != nil {
		return nil, fmt.Errorf("failed to register google provider: %w", err)
	}
	if err := registry.Register(translation.NewGTXProviderFromEnv()); err != nil {
		return nil, fmt.Errorf("failed to register gtx provider: %w", err)
	}

	return translation.NewManager(registry, translation.LinguaVerifier{}), nil
}

func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func pointerStringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func writeTable(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}
