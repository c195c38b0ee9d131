package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/awsconfig"
)

// EnvPrefix is prepended to every environment variable the commands read.
const EnvPrefix = "INFRA"

// Flag names shared by every command.
const (
	FlagConfig        = "config"
	FlagRegion        = "region"
	FlagProfile       = "profile"
	FlagEndpointURL   = "endpoint-url"
	FlagPathStyle     = "path-style"
	FlagAssumeRoleARN = "assume-role-arn"
	FlagMaxRetries    = "max-retries"
	FlagLogLevel      = "log-level"
)

// DefaultLogLevel keeps the console quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// Config holds the settings shared by every command after flags, environment
// and config file are merged.
type Config struct {
	Region        string
	Profile       string
	Endpoint      string
	PathStyle     bool
	AssumeRoleARN string
	MaxRetries    int
	LogLevel      string
}

// AWSOptions converts c into awsconfig load options.
func (c Config) AWSOptions(logger *zap.Logger) awsconfig.Options {
	return awsconfig.Options{
		Region:        c.Region,
		Profile:       c.Profile,
		Endpoint:      c.Endpoint,
		AssumeRoleARN: c.AssumeRoleARN,
		MaxRetries:    c.MaxRetries,
		Logger:        logger,
		Debug:         c.LogLevel == "debug",
	}
}

// AddGlobalFlags registers the flags every command accepts.
func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file (YAML, JSON or TOML)")
	flags.String(FlagRegion, "", "AWS region (default: AWS_REGION or profile region, then us-east-1)")
	flags.String(FlagProfile, "", "shared config profile")
	flags.String(FlagEndpointURL, "", "override the AWS endpoint, e.g. http://localhost:4566")
	flags.Bool(FlagPathStyle, false, "use path-style S3 addressing")
	flags.String(FlagAssumeRoleARN, "", "IAM role to assume for every call")
	flags.Int(FlagMaxRetries, 0, "maximum attempts per AWS request (0 keeps the SDK default)")
	flags.String(FlagLogLevel, DefaultLogLevel, "log level: debug, info, warn, error")
}

// NewViper returns a viper instance reading INFRA_* environment variables.
// Dashes in keys become underscores, so --endpoint-url maps to
// INFRA_ENDPOINT_URL. INFRA_ENDPOINT is accepted as well.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(FlagEndpointURL, EnvPrefix+"_ENDPOINT_URL", EnvPrefix+"_ENDPOINT")
	return v
}

// LoadConfig binds flags into v, reads the optional config file and returns
// the merged settings. Precedence: flag, environment, config file, default.
func LoadConfig(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(FlagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Region:        v.GetString(FlagRegion),
		Profile:       v.GetString(FlagProfile),
		Endpoint:      v.GetString(FlagEndpointURL),
		PathStyle:     v.GetBool(FlagPathStyle),
		AssumeRoleARN: v.GetString(FlagAssumeRoleARN),
		MaxRetries:    v.GetInt(FlagMaxRetries),
		LogLevel:      strings.ToLower(v.GetString(FlagLogLevel)),
	}
	if cfg.MaxRetries < 0 {
		return Config{}, fmt.Errorf("--%s must not be negative, got %d", FlagMaxRetries, cfg.MaxRetries)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg, nil
}
