// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations may be strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://rent.example.com/api",
//	  "admin_password": "secret",
//	  "request_timeout": "30s",
//	  "country_code": "+250",
//	  "staging_dir": "staging",
//	  "database_path": "admin.db",
//	  "log_backend": "zap",
//	  "log_level": "debug",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123"
//	}
//
// The S3 settings are only read from the file. When the admin credential is
// left empty the console prompts for it at startup.
package config
