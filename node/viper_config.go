package node

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers the daemon's config flags on fs: one pflag per
// config key, bound into viper so env/file/flag all resolve through one
// lookup.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.String("network", def.Network, "network name (mainnet, testnet, devnet)")
	fs.String("data-dir", def.DataDir, "directory for chain and mempool state")
	fs.String("listen-addr", def.ListenAddr, "address the admission API listens on")
	fs.String("metrics-addr", def.MetricsAddr, "address the metrics endpoint listens on")
	fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
	fs.StringSlice("peers", def.Peers, "upstream chain RPC peer addresses")
	fs.Int("max-peers", def.MaxPeers, "maximum upstream peer connections")
}

// LoadConfig builds a Config from fs (already parsed), environment
// variables prefixed NOVACHAIN_, and an optional config file, in that
// precedence order (flags win).
func LoadConfig(fs *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("novachain")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		raw, err := readFileByPath(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("node: read config file: %w", err)
		}
		ext := strings.TrimPrefix(filepath.Ext(configFile), ".")
		if ext == "" {
			ext = "yaml"
		}
		v.SetConfigType(ext)
		if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
			return Config{}, fmt.Errorf("node: parse config file: %w", err)
		}
	}

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("node: bind flags: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Network = v.GetString("network")
	cfg.DataDir = v.GetString("data-dir")
	cfg.ListenAddr = v.GetString("listen-addr")
	cfg.MetricsAddr = v.GetString("metrics-addr")
	cfg.LogLevel = v.GetString("log-level")
	cfg.Peers = NormalizePeers(v.GetStringSlice("peers")...)
	cfg.MaxPeers = v.GetInt("max-peers")

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
