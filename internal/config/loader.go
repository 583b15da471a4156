// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `conf/.env` dotenv file.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `FUNNEL_`, where `__` maps to “.”
     (e.g., `FUNNEL_BUYER__API_KEY → buyer.api_key`).

After merging, the tree is unmarshalled into strongly-typed structs,
`vault:` references are resolved through the registered SecretResolver,
the result is validated, enriched with the runtime root path, and cached
in an `atomic.Pointer` for lock-free reads.  `Reload()` simply calls
`Load()` again and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, unmarshal, secret resolution,
    validation failures.
  • INFO  span  — final “config loaded” with key highlights (the api key
    itself is never logged).

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var current atomic.Pointer[Config]

// SecretResolver turns a `vault:mount/path#key` reference into its plain
// value.  internal/vault satisfies this; tests inject fakes.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

var resolver SecretResolver

// SetSecretResolver registers the resolver used for `vault:` references.
// Call before Load(); a nil resolver leaves references untouched so dev
// setups without Vault still boot (and then fail Configured()).
func SetSecretResolver(r SecretResolver) { resolver = r }

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves FUNNEL_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("FUNNEL_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches Config.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: FUNNEL_BUYER__API_KEY → buyer.api_key
	if err := k.Load(env.Provider("FUNNEL_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "FUNNEL_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(&cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"buyer_configured", cfg.Buyer.Configured(),
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveSecrets swaps `vault:` references in the buyer block for their
// plain values.  Config never stores the reference past this point.
func resolveSecrets(cfg *Config) error {
	fields := []*string{
		&cfg.Buyer.URL,
		&cfg.Buyer.CampaignID,
		&cfg.Buyer.SupplierID,
		&cfg.Buyer.APIKey,
	}
	for _, f := range fields {
		if !strings.HasPrefix(*f, "vault:") {
			continue
		}
		if resolver == nil {
			zap.S().Warnw("vault reference present but no resolver registered",
				"ref", *f)
			*f = ""
			continue
		}
		v, err := resolver.Resolve(context.Background(), *f)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload() error { _, err := Load(); return err }
