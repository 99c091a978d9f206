package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultMaxThreads = 15
	defaultFilename   = "package.xml"
	defaultTimeout    = 10 * time.Minute
	defaultIndexURL   = "https://raw.githubusercontent.com/ros/rosdistro/master"
	envPrefix         = "PKGRECON"
)

// Config is the resolved configuration of one invocation
type Config struct {
	Manifest    string
	Output      string
	MaxThreads  int
	Filename    string
	Timeout     time.Duration
	APIURL      string
	GitHubToken string
	FailOnError bool

	IndexURL  string
	OutputDir string

	Log logConfig
}

// loadConfig resolves configuration for cmd, in order of precedence:
// flags, environment (PKGRECON_*), .env file, config file, defaults.
func loadConfig(cmd *cobra.Command) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github-token", envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	cfg := Config{
		MaxThreads:  v.GetInt("max-threads"),
		Filename:    v.GetString("filename"),
		Timeout:     v.GetDuration("timeout"),
		APIURL:      v.GetString("github-api"),
		GitHubToken: v.GetString("github-token"),
		FailOnError: v.GetBool("fail-on-error"),
		IndexURL:    v.GetString("index-url"),
		OutputDir:   v.GetString("output-dir"),
		Log: logConfig{
			Level:   v.GetString("log-level"),
			Format:  v.GetString("log-format"),
			NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		},
	}
	if v.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	if cfg.Filename == "" {
		cfg.Filename = defaultFilename
	}
	return cfg, nil
}
