// Package bootstrap wires a ratings Lambda from its environment.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/ratings/api"
	"github.com/jacentio/ratings/store"
)

// Environment variables read at cold start.
const (
	EnvTableName   = "DYNAMO_TABLE_NAME"
	EnvNightIndex  = "DYNAMO_NIGHT_INDEX"
	EnvYearIndex   = "DYNAMO_YEAR_INDEX"
	EnvShowIndex   = "DYNAMO_SHOW_INDEX"
	EnvMaxAttempts = "DYNAMO_MAX_ATTEMPTS"
	EnvRegion      = "AWS_REGION"
	EnvLogLevel    = "LOG_LEVEL"
	EnvAllowOrigin = "CORS_ALLOW_ORIGIN"
)

const defaultRegion = "us-east-1"

// Settings is everything a ratings Lambda needs to start.
type Settings struct {
	// Store is the table layout.
	Store store.Config

	// Region is the AWS region of the table.
	Region string

	// MaxAttempts caps DynamoDB attempts per query. 1 disables retries.
	MaxAttempts int

	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	// AllowOrigin, when set, is sent as Access-Control-Allow-Origin.
	AllowOrigin string
}

// LoadSettings reads Settings through getenv, normally os.Getenv.
func LoadSettings(getenv func(string) string) Settings {
	s := Settings{
		Store:       store.DefaultConfig(),
		Region:      defaultRegion,
		MaxAttempts: 1,
		LogLevel:    "info",
		AllowOrigin: getenv(EnvAllowOrigin),
	}

	if v := getenv(EnvTableName); v != "" {
		s.Store.TableName = v
	}
	if v := getenv(EnvNightIndex); v != "" {
		s.Store.NightIndex = v
	}
	if v := getenv(EnvYearIndex); v != "" {
		s.Store.YearIndex = v
	}
	if v := getenv(EnvShowIndex); v != "" {
		s.Store.ShowIndex = v
	}
	if v := getenv(EnvRegion); v != "" {
		s.Region = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if n, err := strconv.Atoi(getenv(EnvMaxAttempts)); err == nil && n > 0 {
		s.MaxAttempts = n
	}

	return s
}

// Headers returns the headers every response carries.
func (s Settings) Headers() map[string]string {
	headers := map[string]string{}
	if s.AllowOrigin != "" {
		headers["Access-Control-Allow-Origin"] = s.AllowOrigin
	}
	return headers
}

// NewLogger returns a JSON logger at the named level. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// NewHandler loads the AWS configuration and builds a Handler over the ratings table.
func NewHandler(ctx context.Context, s Settings, logger *slog.Logger) (*api.Handler, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.Region),
		config.WithRetryMaxAttempts(s.MaxAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), s.Store)
	cfg := st.Config()
	logger.Info("ratings store ready",
		"table", cfg.TableName,
		"region", s.Region,
		"maxAttempts", s.MaxAttempts,
	)

	return api.NewHandler(st, logger, api.WithHeaders(s.Headers())), nil
}
