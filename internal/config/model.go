// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                             – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `DOOFINDER_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the site database DSN and pool limits.  The options,
// users, and role tables all live here.
type Database struct {
	DSN     string `koanf:"dsn"      validate:"required"`
	MaxOpen int    `koanf:"max_open" validate:"gte=0"`
	MaxIdle int    `koanf:"max_idle" validate:"gte=0"`
}

//
// Secret section
//

// Secret configures the shared-secret gate and where its token lives.
//
// Backend "sql" reads the token from the options table and generates it on
// first boot when missing.  Backend "vault" reads it from the KV secret at
// VaultPath and never writes.
type Secret struct {
	Header    string        `koanf:"header"     validate:"required"`
	OptionKey string        `koanf:"option_key" validate:"required"`
	Backend   string        `koanf:"backend"    validate:"oneof=sql vault"`
	VaultPath string        `koanf:"vault_path" validate:"required_if=Backend vault"`
	CacheTTL  time.Duration `koanf:"cache_ttl"  validate:"gte=0"`
}

//
// Endpoints section
//

// Endpoints lists handler identifiers (e.g. "Search") to skip at discovery.
type Endpoints struct {
	Disabled []string `koanf:"disabled"`
}

//
// Log section
//

// Log controls the file sink.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Dir     string `koanf:"dir"`
	Console bool   `koanf:"console"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or DOOFINDER_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // DOOFINDER_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Database  Database  `koanf:"database"`
	Secret    Secret    `koanf:"secret"`
	Endpoints Endpoints `koanf:"endpoints"`
	Log       Log       `koanf:"log"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}

// applyDefaults fills zero values the YAML may leave out.
func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Secret.Header == "" {
		c.Secret.Header = "Doofinder-Token"
	}
	if c.Secret.OptionKey == "" {
		c.Secret.OptionKey = "doofinder_for_wp_token"
	}
	if c.Secret.Backend == "" {
		c.Secret.Backend = "sql"
	}
	if c.Secret.CacheTTL == 0 {
		c.Secret.CacheTTL = 30 * time.Second
	}
	if c.Database.MaxOpen == 0 {
		c.Database.MaxOpen = 10
	}
	if c.Database.MaxIdle == 0 {
		c.Database.MaxIdle = 5
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
}
