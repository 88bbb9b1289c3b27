package storage

import (
	"fmt"
	"strings"
	"time"
)

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"STORAGE_BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"STORAGE_ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"STORAGE_SECRET_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `env:"STORAGE_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"STORAGE_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every resource name, e.g. "translations/prod".
	Prefix string `env:"STORAGE_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"STORAGE_PATH_STYLE"`

	// URLExpiry bounds presigned URLs returned by Locate (default: 15 minutes).
	URLExpiry time.Duration `env:"STORAGE_URL_EXPIRY" envDefault:"15m"`
}

// Default configuration values.
const (
	DefaultRegion    = "us-east-1"
	DefaultURLExpiry = 15 * time.Minute
)

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.URLExpiry <= 0 {
		c.URLExpiry = DefaultURLExpiry
	}
	c.Prefix = strings.Trim(c.Prefix, "/ ")
}

// validate checks that required configuration fields are set.
func (c *Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	if strings.Contains(c.Prefix, "..") {
		return fmt.Errorf("%w: prefix %q escapes the bucket root", ErrInvalidConfig, c.Prefix)
	}
	return nil
}

// WithPrefix returns a copy of c with sub appended to its prefix.
func (c Config) WithPrefix(sub string) Config {
	sub = strings.Trim(sub, "/ ")
	switch {
	case sub == "":
	case c.Prefix == "":
		c.Prefix = sub
	default:
		c.Prefix = strings.TrimRight(c.Prefix, "/") + "/" + sub
	}
	return c
}
