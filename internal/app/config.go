package app

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/export"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/notify"
	"github.com/johanneskarlsson/yahoo-fantasy-xlsx/internal/yahoo"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// GetRequiredEnv fetches a required environment variable or exits if not set.
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Msgf("%s environment variable is required", key)
	}
	return value
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// PollInterval reads DRAFT_MONITOR_INTERVAL (seconds) with a 10s default.
func PollInterval() time.Duration {
	raw := GetEnvWithDefault("DRAFT_MONITOR_INTERVAL", "10")
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Warn().Str("value", raw).Msg("Invalid DRAFT_MONITOR_INTERVAL, using 10s")
		return 10 * time.Second
	}
	return time.Duration(secs) * time.Second
}

// InitializeYahooClient authenticates against the Yahoo Fantasy API and
// returns a client bound to the configured league.
func InitializeYahooClient(ctx context.Context) *yahoo.Client {
	log.Debug().Msg("Initializing Yahoo client")
	oauth := yahoo.OAuthConfig{
		ClientID:     GetRequiredEnv("YAHOO_CLIENT_ID"),
		ClientSecret: GetRequiredEnv("YAHOO_CLIENT_SECRET"),
		TokenFile:    GetEnvWithDefault("YAHOO_TOKEN_FILE", "token.json"),
	}
	leagueID := GetRequiredEnv("LEAGUE_ID")

	httpClient, err := oauth.EnsureAuthenticated(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to authenticate with Yahoo")
	}

	log.Debug().Str("league_id", leagueID).Msg("Yahoo client initialized")
	return yahoo.NewClient(leagueID, httpClient)
}

// InitializeSink builds the export sink selected by EXPORT_BACKEND.
func InitializeSink(ctx context.Context) export.Sink {
	backend := export.Backend(GetEnvWithDefault("EXPORT_BACKEND", string(export.DefaultBackend())))
	opts := export.Options{
		Filename:        GetEnvWithDefault("EXCEL_FILENAME", "fantasy_draft_data.xlsx"),
		CredentialsFile: GetEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
	}

	sink, err := export.NewSink(ctx, backend, opts)
	if err != nil {
		log.Fatal().Err(err).Str("backend", string(backend)).Msg("Failed to create export sink")
	}

	log.Info().Str("backend", string(backend)).Msg("Export sink ready")
	return sink
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient() *notify.Client {
	enabled := GetEnvWithDefault("NTFY_ENABLED", "false") == "true"
	baseURL := GetEnvWithDefault("NTFY_URL", "https://ntfy.sh")
	topic := GetEnvWithDefault("NTFY_TOPIC", "fantasy-draft-picks")
	priority := GetEnvWithDefault("NTFY_PRIORITY", "default")

	log.Debug().
		Bool("enabled", enabled).
		Str("base_url", baseURL).
		Str("topic", topic).
		Msg("Initializing notification client")

	client := notify.NewClient(baseURL, topic, enabled, priority)

	if enabled {
		log.Info().Str("topic", topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return client
}
