package config

import (
	"github.com/dmitrijs2005/memorylane/internal/flagx"
	"github.com/dmitrijs2005/memorylane/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. Durations
// accept strings such as "15m" or integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string         `json:"endpoint_addr_http" toml:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn" toml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" toml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" toml:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" toml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	PublicBaseURL                string         `json:"public_base_url" toml:"public_base_url"`
	PresignExpiry                timex.Duration `json:"presign_expiry" toml:"presign_expiry"`
	LogLevel                     string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays values from the file named by -c / -config. Keys absent
// from the file keep their current value. An unreadable or malformed file
// panics, like a bad flag does.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeFile(path, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
