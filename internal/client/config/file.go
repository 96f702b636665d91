package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/flagx"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by JSON and YAML files.
type fileConfig struct {
	APIBaseURL     string   `json:"api_base_url" yaml:"api_base_url"`
	AdminPassword  string   `json:"admin_password" yaml:"admin_password"`
	RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	CountryCode    string   `json:"country_code" yaml:"country_code"`
	StagingDir     string   `json:"staging_dir" yaml:"staging_dir"`
	DatabasePath   string   `json:"database_path" yaml:"database_path"`
	LogBackend     string   `json:"log_backend" yaml:"log_backend"`
	LogLevel       string   `json:"log_level" yaml:"log_level"`
	S3Region       string   `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string   `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey    string   `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string   `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile overlays cfg with the non-empty values of the file named by
// -c/-config. Without that flag cfg is left untouched.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.APIBaseURL, fc.APIBaseURL)
	overlay(&cfg.AdminPassword, fc.AdminPassword)
	overlay(&cfg.CountryCode, fc.CountryCode)
	overlay(&cfg.StagingDir, fc.StagingDir)
	overlay(&cfg.DatabasePath, fc.DatabasePath)
	overlay(&cfg.LogBackend, fc.LogBackend)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.S3Region, fc.S3Region)
	overlay(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, fc.S3AccessKey)
	overlay(&cfg.S3SecretKey, fc.S3SecretKey)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}

	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
