// internal/config/model.go
//
// Typed configuration model for Converta.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                        – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `CONVERTA_`-prefixed environment overrides  – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* the pool opens, so the model never
// stores Vault URIs beyond boot—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Platform section
//

// Platform describes the hostnames that belong to the platform itself.
// Any other hostname reaching the server is treated as a tenant custom
// domain by the routing middleware.
type Platform struct {
	// RootDomain is the apex serving the dashboard and the public API
	// (e.g., "converta.app").  Subdomains of it are platform traffic too.
	RootDomain string `koanf:"root_domain" validate:"required,hostname"`

	// PreviewDomain hosts deploy previews (e.g., "converta.vercel.app").
	// Optional; empty disables the check.
	PreviewDomain string `koanf:"preview_domain"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  The *secret* portion
// (`Password`) may be a `vault:` URI resolved at boot, keeping
// credentials out of flat files and git history.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// Redis section
//

// Redis configures the optional widget-config read-through cache.  An
// empty Addr disables caching entirely; the widget endpoint then reads
// straight from MySQL on every request.
type Redis struct {
	Addr string `koanf:"addr"`
	TTL  int    `koanf:"ttl_seconds"` // 0 → default 60
}

//
// Geo section
//

// Geo points at the optional GeoLite2-City database used to annotate
// captured leads with a best-effort country/city.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or CONVERTA_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // CONVERTA_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Platform Platform `koanf:"platform"`
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
