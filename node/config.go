package node

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// Config is the admission daemon's runtime configuration, loaded via viper
// from flags/env/file (see LoadConfig).
type Config struct {
	Network     string   `mapstructure:"network" json:"network"`
	DataDir     string   `mapstructure:"data_dir" json:"data_dir"`
	ListenAddr  string   `mapstructure:"listen_addr" json:"listen_addr"`
	MetricsAddr string   `mapstructure:"metrics_addr" json:"metrics_addr"`
	LogLevel    string   `mapstructure:"log_level" json:"log_level"`
	// Peers is a list of upstream peer endpoints. It is normalized and
	// validated; novachaind does not connect to them or sync from them.
	Peers    []string `mapstructure:"peers" json:"peers"`
	MaxPeers int      `mapstructure:"max_peers" json:"max_peers"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".novachain"
	}
	return filepath.Join(home, ".novachain")
}

func DefaultConfig() Config {
	return Config{
		Network:     "devnet",
		DataDir:     DefaultDataDir(),
		ListenAddr:  "0.0.0.0:19111",
		MetricsAddr: "127.0.0.1:9190",
		Peers:       nil,
		LogLevel:    "info",
		MaxPeers:    64,
	}
}

func NormalizePeers(raw ...string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, token := range raw {
		for _, p := range strings.Split(token, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Network) == "" {
		return errors.New("network is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if err := validateAddr(cfg.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen_addr: %w", err)
	}
	for _, peer := range cfg.Peers {
		if err := validatePeerAddr(peer); err != nil {
			return fmt.Errorf("invalid peer %q: %w", peer, err)
		}
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.MaxPeers <= 0 {
		return errors.New("max_peers must be > 0")
	}
	if cfg.MaxPeers > 4096 {
		return errors.New("max_peers must be <= 4096")
	}
	return nil
}

func validateAddr(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("empty address")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if strings.TrimSpace(port) == "" {
		return errors.New("missing port")
	}
	if strings.Contains(host, " ") {
		return errors.New("invalid host")
	}
	return nil
}

func validatePeerAddr(addr string) error {
	if err := validateAddr(addr); err != nil {
		return err
	}
	host, _, _ := net.SplitHostPort(addr)
	if strings.TrimSpace(host) == "" {
		return errors.New("missing host")
	}
	return nil
}
