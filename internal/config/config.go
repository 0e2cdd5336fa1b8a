package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the explicit pipeline configuration. There are no
// process-wide default paths; everything the driver needs travels here.
type AppConfig struct {
	Source SourceConfig `toml:"source"`
	Output OutputConfig `toml:"output"`
	Sync   SyncConfig   `toml:"sync"`
	Audit  AuditConfig  `toml:"audit"`
	Log    LogConfig    `toml:"log"`
}

// SourceConfig locates the workbook the fetch step must have delivered.
type SourceConfig struct {
	WorkbookPath string `toml:"workbook_path"`
}

// OutputConfig locates the seed JSON output directory.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// SyncConfig holds extraction tuning.
type SyncConfig struct {
	// RecencyDays restricts orders/shipments to the last N days;
	// 0 processes everything.
	RecencyDays int `toml:"recency_days"`
}

// AuditConfig controls the SQLite run log.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Dev bool `toml:"dev"`
}

// DefaultConfig mirrors the layout the sync scripts always used.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Source: SourceConfig{
			WorkbookPath: "VENTAS COMPRAS 2023 al 2025 Para Sistema en Gemini.xlsx",
		},
		Output: OutputConfig{
			Dir: filepath.Join("webapp", "prisma"),
		},
		Sync: SyncConfig{
			RecencyDays: 0,
		},
		Audit: AuditConfig{
			Enabled: true,
			DBPath:  filepath.Join("data", "eswcargo.db"),
		},
		Log: LogConfig{
			Dev: false,
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// Load reads config.toml from the executable's directory, falling back to
// defaults when the file does not exist, then applies ESWCARGO_* env
// overrides.
func Load() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("ESWCARGO_WORKBOOK"); v != "" {
		cfg.Source.WorkbookPath = v
	}
	if v := os.Getenv("ESWCARGO_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("ESWCARGO_AUDIT_DB"); v != "" {
		cfg.Audit.DBPath = v
	}

	return cfg, nil
}

// Save writes the configuration back to config.toml.
func Save(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0o644)
}
