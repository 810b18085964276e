package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/watchlist/internal/flagx"
	"github.com/dmitrijs2005/watchlist/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Only keys present in
// the file override the current values.
type FileConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             *string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	AuthScheme            *string         `json:"auth_scheme" yaml:"auth_scheme"`
	StoreTimeout          *timex.Duration `json:"store_timeout" yaml:"store_timeout"`
	LogBackend            *string         `json:"log_backend" yaml:"log_backend"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Without the flag
// nothing is loaded; an unreadable or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.AuthScheme, fc.AuthScheme)
	setString(&config.LogBackend, fc.LogBackend)
	if fc.TokenValidityDuration != nil {
		config.TokenValidityDuration = fc.TokenValidityDuration.Duration
	}
	if fc.StoreTimeout != nil {
		config.StoreTimeout = fc.StoreTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
