package fivem

import (
	"strconv"
	"strings"
)

// Config identifies the target server.
type Config struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

// Address is a validated host and port pair. The zero value is not usable;
// obtain one through NewAddress.
type Address struct {
	host string
	port int
}

// NewAddress validates cfg and returns the address it describes. The host
// must be non-blank and the port within 1..65535; anything else yields a
// *ConfigError.
func NewAddress(cfg Config) (Address, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return Address{}, &ConfigError{Field: "host", Reason: "is required"}
	}
	if cfg.Port <= 0 {
		return Address{}, &ConfigError{Field: "port", Reason: "must be a positive integer"}
	}
	if cfg.Port > 65535 {
		return Address{}, &ConfigError{Field: "port", Reason: "must not exceed 65535"}
	}
	return Address{host: cfg.Host, port: cfg.Port}, nil
}

func (a Address) Host() string { return a.host }
func (a Address) Port() int    { return a.port }

// String renders the address as "host:port" with no normalization.
func (a Address) String() string {
	return a.host + ":" + strconv.Itoa(a.port)
}
