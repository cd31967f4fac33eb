package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
)

const envPrefix = "FEEDBACK_"

// Loader carries the process inputs so tests can supply their own.
type Loader struct {
	LookupEnv  func(string) (string, bool)
	DotEnvPath string
	Output     io.Writer // flag usage and errors
}

// Load reads configuration for the current process. It returns the
// remaining arguments: the command name followed by its own arguments.
func Load(args []string) (*Config, []string, error) {
	return Loader{LookupEnv: os.LookupEnv, DotEnvPath: ".env", Output: os.Stderr}.Load(args)
}

type globalFlags struct {
	config  string
	dataDir string
	verbose bool
	noColor bool
}

func (l Loader) Load(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("feedbackgalaxy", flag.ContinueOnError)
	if l.Output != nil {
		fs.SetOutput(l.Output)
	} else {
		fs.SetOutput(io.Discard)
	}
	var gf globalFlags
	fs.StringVar(&gf.config, "c", "", "path to YAML config file")
	fs.StringVar(&gf.config, "config", "", "path to YAML config file")
	fs.StringVar(&gf.dataDir, "d", "", "data directory")
	fs.BoolVar(&gf.verbose, "v", false, "verbose console logging")
	fs.BoolVar(&gf.noColor, "no-color", false, "disable coloured output")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &Config{}
	cfg.LoadDefaults()

	dotenv, err := l.readDotEnv()
	if err != nil {
		return nil, nil, err
	}
	if err := applyEnv(cfg, func(k string) (string, bool) {
		v, ok := dotenv[k]
		return v, ok
	}); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", l.DotEnvPath, err)
	}

	yamlPath := gf.config
	if yamlPath == "" {
		yamlPath, _ = l.lookup(envPrefix+"CONFIG", dotenv)
	}
	if yamlPath != "" {
		if err := parseYAML(cfg, yamlPath); err != nil {
			return nil, nil, err
		}
	}

	if err := applyEnv(cfg, l.LookupEnv); err != nil {
		return nil, nil, err
	}

	if set["d"] {
		cfg.DataDir = gf.dataDir
	}
	if set["no-color"] {
		cfg.NoColor = gf.noColor
	}
	cfg.Verbose = gf.verbose

	if err := cfg.resolve(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func (l Loader) lookup(key string, dotenv map[string]string) (string, bool) {
	if l.LookupEnv != nil {
		if v, ok := l.LookupEnv(key); ok {
			return v, true
		}
	}
	v, ok := dotenv[key]
	return v, ok
}

// readDotEnv returns the .env values without touching the process
// environment. A missing file yields an empty map.
func (l Loader) readDotEnv() (map[string]string, error) {
	if l.DotEnvPath == "" {
		return map[string]string{}, nil
	}
	ok, err := datafs.Exists(l.DotEnvPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]string{}, nil
	}
	m, err := godotenv.Read(l.DotEnvPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.DotEnvPath, err)
	}
	return m, nil
}

func parseYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	strs := []struct {
		key string
		dst *string
	}{
		{"DATA_DIR", &cfg.DataDir},
		{"USERS_FILE", &cfg.UsersFile},
		{"SESSION_FILE", &cfg.SessionFile},
		{"FEEDBACK_DIR", &cfg.FeedbackDir},
		{"LOG_DIR", &cfg.LogDir},
		{"PASSWORD_SCHEME", &cfg.PasswordScheme},
		{"SESSION_SECRET", &cfg.SessionSecret},
	}
	for _, s := range strs {
		if v, ok := lookup(envPrefix + s.key); ok {
			*s.dst = v
		}
	}
	if v, ok := lookup(envPrefix + "NO_COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sNO_COLOR: %w", envPrefix, err)
		}
		cfg.NoColor = b
	}
	return nil
}
