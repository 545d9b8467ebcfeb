// Package config loads the server's HCL configuration file: connection
// settings plus the single table's identity. Blinds, seat count, and
// buy-in bounds are fixed engine constants (internal/table), not
// configurable — this server runs exactly one table.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig is the top-level decoded HCL document.
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableConfig    `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// TableConfig names the single table this server hosts. It carries no
// blind/seat/buy-in overrides: those are fixed by the engine (§ spec
// constants), never operator-tunable.
type TableConfig struct {
	Name string `hcl:"name,label"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "holdem-server.log",
		},
		Table: TableConfig{Name: "main"},
	}
}

// LoadServerConfig loads server configuration from an HCL file, falling
// back to DefaultServerConfig if filename does not exist.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parsing %s: %s", filename, diags.Error())
	}

	var cfg ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decoding %s: %s", filename, diags.Error())
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Table.Name == "" {
		cfg.Table.Name = "main"
	}

	return &cfg, nil
}

// Validate checks the decoded configuration for obviously broken values.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Table.Name == "" {
		return fmt.Errorf("config: table name is required")
	}
	return nil
}
