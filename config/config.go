// Package config loads asset builder trees from configuration files, so the
// same templates can point at a local path in development and at a CDN in
// production.
//
// A configuration looks like:
//
//	property_name: assets
//	assets:
//	  base: //cdn.example.com
//	  version: 3
//	  query: "v=1"
//	  provides:
//	    css:
//	      base: stylesheets
//	    js:
//	      query: "defer=1"
//
// Load reads "<name>.<ext>" and then merges "<name>.<environment>.<ext>" over
// it. Environment variables prefixed with ASSETLY_ override single keys, e.g.
// ASSETLY_ASSETS_BASE=/static.
package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goflash/assetly/builder"
	"github.com/goflash/assetly/ctx"
	"github.com/goflash/assetly/query"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned (wrapped) when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid asset configuration")

const (
	// DefaultName is the configuration file name without extension.
	DefaultName = "assets"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "ASSETLY"
)

// Options controls where Load looks for configuration.
type Options struct {
	// Name is the base file name without extension. Default: "assets".
	Name string
	// Environment selects the overlay file "<Name>.<Environment>.<ext>".
	// Empty means no overlay.
	Environment string
	// Paths are the directories searched for configuration. Default: ".".
	Paths []string
	// Type forces the configuration format ("yaml", "json", "toml", ...).
	// When empty viper infers it from the file extension.
	Type string
}

// Node is one builder in the configured tree.
type Node struct {
	// Base is the local path segment. For provided sub-builders an unset
	// base defaults to the sub-builder's name.
	Base *string `mapstructure:"base"`
	// Version, when set, is appended to Base as one more path segment.
	Version *int `mapstructure:"version" validate:"omitempty,gte=0"`
	// Query is the declared query, either a querystring or a map.
	Query *query.Query `mapstructure:"query"`
	// Provides declares named sub-builders.
	Provides map[string]Node `mapstructure:"provides" validate:"omitempty,dive,keys,required,endkeys"`
}

// Config is the decoded configuration.
type Config struct {
	// PropertyName is the app property and template local holding the root
	// builder. Template field names must be identifiers.
	PropertyName string `mapstructure:"property_name" validate:"omitempty,alphanum"`
	// Assets is the root builder.
	Assets Node `mapstructure:"assets"`
}

var validate = validator.New()

// Load reads, merges, decodes and validates the configuration. A missing
// base file is not an error and yields an empty root; a missing environment
// overlay is not an error either.
func Load(c context.Context, opts Options) (*Config, error) {
	log := ctx.LoggerFromContext(c)

	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := newViper(name, opts.Type, paths)
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return nil, fmt.Errorf("read asset config: %w", err)
		}
		log.Debug("no asset config file found", "name", name, "paths", paths)
	} else {
		log.Debug("using asset config file", "file", v.ConfigFileUsed())
	}

	if opts.Environment != "" {
		overlay := newViper(name+"."+opts.Environment, opts.Type, paths)
		if err := overlay.ReadInConfig(); err != nil {
			if !errors.As(err, new(viper.ConfigFileNotFoundError)) {
				return nil, fmt.Errorf("read asset config for %q: %w", opts.Environment, err)
			}
			log.Debug("no asset config overlay found", "environment", opts.Environment)
		} else {
			if err := v.MergeConfigMap(overlay.AllSettings()); err != nil {
				return nil, fmt.Errorf("merge asset config for %q: %w", opts.Environment, err)
			}
			log.Debug("using asset config overlay", "file", overlay.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(QueryDecodeHookFunc())); err != nil {
		return nil, fmt.Errorf("decode asset config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(name, typ string, paths []string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(name)
	if typ != "" {
		v.SetConfigType(typ)
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper knows about.
	_ = v.BindEnv("property_name")
	_ = v.BindEnv("assets.base")
	_ = v.BindEnv("assets.version")
	_ = v.BindEnv("assets.query")
	return v
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Spec returns the builder spec described by n. The version is appended to
// the base as one more path segment.
func (n Node) Spec() builder.Spec {
	if n.Base == nil && n.Version == nil {
		if n.Query == nil {
			return builder.Empty()
		}
		return builder.QueryOnly(n.Query)
	}
	base := ""
	if n.Base != nil {
		base = *n.Base
	}
	if n.Version != nil {
		v := strconv.Itoa(*n.Version)
		if base = strings.TrimSuffix(base, "/"); base != "" {
			v = base + "/" + v
		}
		base = v
	}
	return builder.PathQuery(base, n.Query)
}

// Builder creates the root builder with all configured sub-builders.
func (c *Config) Builder() *builder.Builder {
	root := builder.New(c.Assets.Spec())
	provide(root, c.Assets.Provides)
	return root
}

func provide(parent *builder.Builder, nodes map[string]Node) {
	for name, n := range nodes {
		parent.Provides(name, n.Spec())
		provide(parent.Sub(name), n.Provides)
	}
}

// ExpressOptions returns the options for publishing the root builder.
func (c *Config) ExpressOptions() builder.ExpressOptions {
	return builder.ExpressOptions{PropertyName: c.PropertyName}
}

// Setup builds the configured tree and publishes it on h.
//
// Example:
//
//	cfg, err := config.Load(ctx, config.Options{Environment: os.Getenv("APP_ENV")})
//	if err != nil {
//		return err
//	}
//	assets := cfg.Setup(a)
func (c *Config) Setup(h builder.Host) *builder.Builder {
	b := c.Builder()
	b.Express(h, c.ExpressOptions())
	return b
}
