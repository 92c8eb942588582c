package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/strandplatform/strand-go/pkg/auth"
	"github.com/strandplatform/strand-go/pkg/env"
	pkghttp "github.com/strandplatform/strand-go/pkg/http"
	"github.com/strandplatform/strand-go/pkg/log"
	"github.com/strandplatform/strand-go/pkg/metric"
	"github.com/strandplatform/strand-go/pkg/observability"
	"github.com/strandplatform/strand-go/pkg/storage"
	"github.com/strandplatform/strand-go/pkg/strand"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "strand",
	Short: "Strand is a command line client for the Strand platform",
	Long: `A command line client for the Strand backend-as-a-service platform.
Configure it with STRAND_BASE_URL and optionally STRAND_AUTH_URL,
STRAND_GENERATION (app|legacy), STRAND_SESSION_FILE and STRAND_LOG_LEVEL.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load configuration from the given dotenv file")
}

// newClient wires the SDK from the environment. The returned closer releases
// the session storage.
func newClient() (*strand.Client, func(), error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	baseURL, err := env.Parse[string]("STRAND_BASE_URL")
	if err != nil {
		return nil, nil, err
	}

	generation := strand.GenerationApp
	if env.ParseDefault("STRAND_GENERATION", "app") == "legacy" {
		generation = strand.GenerationLegacy
	}

	sessionFile := env.ParseDefault("STRAND_SESSION_FILE", "")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve home directory: %w", err)
		}
		sessionFile = filepath.Join(home, ".strand", "session.db")
	}
	if err := os.MkdirAll(filepath.Dir(sessionFile), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create session directory: %w", err)
	}

	sessionStorage, closeStorage, err := storage.NewBoltStorage(sessionFile)
	if err != nil {
		return nil, nil, err
	}

	logger := log.New(logLevel())
	observer := observability.New(observability.WithFieldsLogging(logger, observability.LogFieldRequestID))

	httpClient := pkghttp.NewClientFactory(
		pkghttp.WithRequestID(observer, pkghttp.DefaultRequestIDHeader),
		pkghttp.WithRequestLogging(logger, log.LevelDebug, log.LevelWarn),
		pkghttp.WithRequestMetrics(metric.NewMetricsStub()),
	).InitRawClient()

	client, err := strand.NewClient(strand.Config{
		AppID:      env.ParseDefault("STRAND_APP_ID", ""),
		BaseURL:    baseURL,
		AuthURL:    env.ParseDefault("STRAND_AUTH_URL", ""),
		Generation: generation,
	},
		auth.NewStore(sessionStorage),
		strand.WithLogger(logger),
		strand.WithHTTPClient(httpClient),
	)
	if err != nil {
		_ = closeStorage()
		return nil, nil, err
	}

	return client, func() { _ = closeStorage() }, nil
}

func logLevel() log.Level {
	switch env.ParseDefault("STRAND_LOG_LEVEL", "") {
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelDisabled
	}
}
