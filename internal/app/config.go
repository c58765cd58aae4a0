package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasktimer/internal/storage"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	Backend        string `mapstructure:"backend"`
	Verbose        bool   `mapstructure:"verbose"`
	RefreshSeconds int    `mapstructure:"refresh_seconds"`
}

// DefaultConfig keeps task files next to the executable.
func DefaultConfig() Config {
	return Config{
		DataDir:        executableDir(),
		Backend:        storage.BackendJSON,
		Verbose:        false,
		RefreshSeconds: 1,
	}
}

func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasktimer", "config.yaml")
}

// LoadConfigFile overlays the YAML file at path onto base. A missing file
// leaves base untouched.
func LoadConfigFile(path string, base Config) (Config, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return base, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

func ConfigFromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKTIMER_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKTIMER_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKTIMER_VERBOSE"); ok {
		cfg.Verbose = v
	}
	if v, ok := getEnvInt("TASKTIMER_REFRESH_SECONDS"); ok && v > 0 {
		cfg.RefreshSeconds = v
	}
	return cfg
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
