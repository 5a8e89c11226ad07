package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no config file is present.
// The photo directory defaults to the current working directory; callers
// that know better (CLI flags, tests) override it afterwards.
func Default() AppConfig {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg := AppConfig{
		Server: ServerConfig{Port: 8000},
		Photos: PhotosConfig{Dir: wd},
	}
	applyDefaults(&cfg)
	return cfg
}

// Load reads and validates a YAML configuration file. An empty path tries
// config.yml in the working directory and falls back to Default when the
// file does not exist.
func Load(path string) (AppConfig, error) {
	if path == "" {
		path = "config.yml"
		if _, err := os.Stat(path); err != nil {
			return Default(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Photos.GPXSubdir == "" {
		cfg.Photos.GPXSubdir = "gpx"
	}
	if cfg.Photos.NoGPSSubdir == "" {
		cfg.Photos.NoGPSSubdir = "no_gps"
	}
	if cfg.Match.MaxGapSeconds == 0 {
		cfg.Match.MaxGapSeconds = 3600
	}
	if cfg.Exiftool.Path == "" {
		cfg.Exiftool.Path = "exiftool"
	}
	if cfg.Exiftool.TimeoutMS == 0 {
		cfg.Exiftool.TimeoutMS = 30000
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 4 * runtime.NumCPU()
	}
	if cfg.Scan.ThumbnailPx == 0 {
		cfg.Scan.ThumbnailPx = 200
	}
	if cfg.Scan.JPEGQuality == 0 {
		cfg.Scan.JPEGQuality = 70
	}
}

func joinDir(base, sub string) string {
	if sub == "" {
		return base
	}
	return filepath.Join(base, sub)
}
