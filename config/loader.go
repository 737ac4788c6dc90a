package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file lookups so the loader can be tested without
// touching the real filesystem.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type realFileSystem struct{}

func (realFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (realFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderOptions holds optional overrides for Load.
type LoaderOptions struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lo *LoaderOptions) { lo.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lo *LoaderOptions) { lo.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lo *LoaderOptions) { lo.EnvFile = path }
}

// Load reads the layered configuration, applies defaults, and validates it.
// Precedence, lowest to highest: config.yml, .env file, process environment.
func Load(opts ...LoaderOption) (*Config, error) {
	var lo LoaderOptions
	for _, opt := range opts {
		opt(&lo)
	}
	if lo.FileSystem == nil {
		lo.FileSystem = realFileSystem{}
	}

	v := viper.New()

	configFile := lo.ConfigFile
	if configFile == "" {
		configFile = findFirst(lo.FileSystem, "./config.yml", "./config/config.yml", "../config.yml")
	}
	if configFile != "" && lo.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	envFile := lo.EnvFile
	if envFile == "" {
		envFile = findFirst(lo.FileSystem, "./.env", "../.env")
	}
	if envFile != "" && lo.FileSystem.Exists(envFile) {
		if err := lo.FileSystem.LoadEnv(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
		// Re-bind so variables introduced by the .env file are visible.
		bindEnvVars(v)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFirst(fs FileSystem, paths ...string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnvVars maps every UPPER_CASE_WITH_UNDERSCORES environment variable
// onto the nested viper keys it could refer to.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || pair[1] == "" {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an environment variable
// can bind to. Every split point between the underscore-separated words is a
// candidate nesting boundary:
//
//	AUTH_JWT_SECRET -> auth_jwt_secret, auth.jwt.secret, auth.jwt_secret, auth.jwt.secret
//	MONGO_URI       -> mongo_uri, mongo.uri
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	variants := []string{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			variants = append(variants, s)
		}
	}

	add(lower)
	add(strings.ReplaceAll(lower, "_", "."))
	// Dotted prefix with an underscored tail, for keys whose leaf name
	// itself contains underscores (e.g. server.max_body_size).
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}

	return variants
}
