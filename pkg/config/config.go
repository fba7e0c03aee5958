// Package config loads fascia settings from a TOML file, a .env file and
// the process environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, environment
// variables (after .env has been merged into the environment). A minimal
// file only names what it changes:
//
//	[grouping]
//	keep = 4
//	precision = 3
//
//	[resources]
//	source = "bucket"
//
//	[resources.bucket]
//	endpoint = "minio:9000"
//	bucket = "torso-slices"
//
//	[scale.viewer]
//	input = "out/fascia_scaffold.json"
//	output = "out/fascia_scaffold_scaled.json"
//	axes = ["x", "y"]
//	target = { min = -1000, max = 1000 }
//
// A scale profile given in the file replaces the built-in profile of the
// same name entirely.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/resource"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

// Default file locations.
const (
	DefaultPath = "fascia.toml"
	DotEnvFile  = ".env"
)

// Resource sources.
const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
	SourceNone   = "none"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete fascia configuration.
type Config struct {
	Input     InputConfig             `toml:"input"`
	Output    OutputConfig            `toml:"output"`
	Resources ResourceConfig          `toml:"resources"`
	Grouping  GroupingConfig          `toml:"grouping"`
	Scale     map[string]ScaleProfile `toml:"scale"`
	Cache     CacheConfig             `toml:"cache"`
}

// InputConfig names the anchor and wire tables.
type InputConfig struct {
	Nodes string `toml:"nodes"`
	Edges string `toml:"edges"`
}

// OutputConfig names the full and filtered scaffold documents.
type OutputConfig struct {
	Scaffold string `toml:"scaffold"`
	Filtered string `toml:"filtered"`
}

// ResourceConfig selects where background images come from and how they
// pair with components.
type ResourceConfig struct {
	Source  string                `toml:"source"`
	Dir     string                `toml:"dir"`
	Pairing string                `toml:"pairing"`
	Bucket  resource.BucketConfig `toml:"bucket"`
}

// GroupingConfig controls layer grouping and filtering.
type GroupingConfig struct {
	// Keep is the number of components the filtered scaffold keeps verbatim.
	Keep int `toml:"keep"`
	// Precision rounds z to this many decimals before grouping; negative
	// means exact equality.
	Precision int `toml:"precision"`
}

// ScaleProfile is one named normalization run.
type ScaleProfile struct {
	Input    string         `toml:"input"`
	Output   string         `toml:"output"`
	Axes     []string       `toml:"axes"`
	Target   scaffold.Range `toml:"target"`
	ZeroBase []string       `toml:"zero_base"`
}

// CacheConfig selects the scaffold cache backend.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Nodes: "scripts/data/input/fascia_nodes_v1.csv",
			Edges: "scripts/data/input/fascia_edges_v1.csv",
		},
		Output: OutputConfig{
			Scaffold: "scripts/data/output/fascia_scaffold.json",
			Filtered: "scripts/data/output/fascia_scaffold_filtered.json",
		},
		Resources: ResourceConfig{
			Source:  SourceDir,
			Dir:     "scripts/data/output/torso_images",
			Pairing: scaffold.PairReversed.Name,
		},
		Grouping: GroupingConfig{
			Keep:      scaffold.DefaultKeep,
			Precision: scaffold.ExactKeys.Precision,
		},
		Scale: map[string]ScaleProfile{
			"viewer": {
				Input:  "data/output/fascia_scaffold_backgrounds.json",
				Output: "data/output/fascia_scaffold_backgrounds_scaled.json",
				Axes:   []string{"x", "y"},
				Target: scaffold.Range{Min: -1000, Max: 1000},
			},
			"compact": {
				Input:    "data/output/fascia_scaffold_filtered.json",
				Output:   "data/output/fascia_scaffold_compact.json",
				Axes:     []string{"x", "y"},
				Target:   scaffold.Range{Min: -100, Max: 100},
				ZeroBase: []string{"z"},
			},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// Load reads the configuration. An empty path reads [DefaultPath] if it
// exists; an explicit path must exist. The .env file in the working
// directory is merged into the environment first, without overriding
// variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(DotEnvFile)

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		if explicit {
			return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"FASCIA_RESOURCE_SOURCE": &c.Resources.Source,
		"FASCIA_S3_ENDPOINT":     &c.Resources.Bucket.Endpoint,
		"FASCIA_S3_REGION":       &c.Resources.Bucket.Region,
		"FASCIA_S3_BUCKET":       &c.Resources.Bucket.Bucket,
		"FASCIA_S3_PREFIX":       &c.Resources.Bucket.Prefix,
		"FASCIA_S3_ACCESS_KEY":   &c.Resources.Bucket.AccessKey,
		"FASCIA_S3_SECRET_KEY":   &c.Resources.Bucket.SecretKey,
		"FASCIA_CACHE_BACKEND":   &c.Cache.Backend,
		"FASCIA_REDIS_URL":       &c.Cache.RedisURL,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("FASCIA_S3_USE_SSL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "FASCIA_S3_USE_SSL")
		}
		c.Resources.Bucket.UseSSL = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Grouping.Keep < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "grouping.keep must not be negative, got %d", c.Grouping.Keep)
	}
	switch c.Resources.Source {
	case SourceDir, SourceBucket, SourceNone:
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "unknown resources.source %q", c.Resources.Source)
	}
	if _, err := scaffold.ParsePairing(c.Resources.Pairing); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "resources.pairing")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "unknown cache.backend %q", c.Cache.Backend)
	}
	for _, name := range c.ProfileNames() {
		p := c.Scale[name]
		if p.Input == "" || p.Output == "" {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "scale.%s needs input and output", name)
		}
		if _, err := p.Options(); err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "scale.%s", name)
		}
	}
	return nil
}

// KeyPolicy returns the layer key policy.
func (c *Config) KeyPolicy() scaffold.KeyPolicy {
	return scaffold.KeyPolicy{Precision: c.Grouping.Precision}
}

// Pairing returns the resource pairing strategy.
func (c *Config) Pairing() (scaffold.Pairing, error) {
	return scaffold.ParsePairing(c.Resources.Pairing)
}

// ProfileNames returns the scale profile names in sorted order.
func (c *Config) ProfileNames() []string {
	return slices.Sorted(maps.Keys(c.Scale))
}

// Profile returns the named scale profile.
func (c *Config) Profile(name string) (ScaleProfile, error) {
	p, ok := c.Scale[name]
	if !ok {
		return ScaleProfile{}, ferrors.New(ferrors.ErrCodeNotFound, "unknown scale profile %q (have %v)", name, c.ProfileNames())
	}
	return p, nil
}

// Options converts the profile into normalization options.
func (p ScaleProfile) Options() (scaffold.NormalizeOptions, error) {
	opts := scaffold.NormalizeOptions{Target: p.Target}
	for _, s := range p.Axes {
		a, err := scaffold.ParseAxis(s)
		if err != nil {
			return opts, err
		}
		opts.Axes = append(opts.Axes, a)
	}
	for _, s := range p.ZeroBase {
		a, err := scaffold.ParseAxis(s)
		if err != nil {
			return opts, err
		}
		opts.ZeroBase = append(opts.ZeroBase, a)
	}
	return opts, opts.Validate()
}

// NewSource builds the configured resource source. The none source lists
// nothing.
func (r ResourceConfig) NewSource() (resource.Source, error) {
	switch r.Source {
	case SourceDir:
		return resource.NewDirSource(r.Dir), nil
	case SourceBucket:
		src, err := resource.NewBucketSource(r.Bucket)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceNone:
		return resource.Static(nil), nil
	}
	return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "unknown resources.source %q", r.Source)
}
