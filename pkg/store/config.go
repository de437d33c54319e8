package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" config key.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config interface {
	BasePath() string
	Backend() string
	RemoteDSN() string
	RemoteUser() string
}

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH or the working
// directory, layered under PLANNER_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.planner")
	v.SetDefault("backend", BackendDiskv)
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("backend")))
	switch backend {
	case BackendDiskv, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}

	return &FileConfig{
		Path:        filepath.Clean(path),
		StoreDriver: backend,
		DSN:         v.GetString("remote.dsn"),
		User:        v.GetString("remote.user"),
	}, nil
}

// FileConfig is the resolved configuration. It is exported so commands and
// tests can build one directly.
type FileConfig struct {
	Path        string `json:"path"`
	StoreDriver string `json:"backend"`
	DSN         string `json:"remoteDsn,omitempty"`
	User        string `json:"remoteUser,omitempty"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Backend() string {
	if f.StoreDriver == "" {
		return BackendDiskv
	}
	return f.StoreDriver
}

func (f *FileConfig) RemoteDSN() string {
	return f.DSN
}

func (f *FileConfig) RemoteUser() string {
	return f.User
}

// Open returns the Store selected by cfg.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend() {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.BasePath(), "planner.db"))
	case BackendDiskv, "":
		return OpenDiskv(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
