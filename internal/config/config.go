// Package config resolves formatter settings from defaults, a project file
// (.beanfmt.toml / .beanfmt.yaml), the environment and CLI flags, in that
// order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileNames are searched in this order in every directory.
var FileNames = []string{".beanfmt.toml", ".beanfmt.yaml", ".beanfmt.yml"}

// Config holds every tunable of a formatting run.
type Config struct {
	IndentWidth  int    `toml:"indent" yaml:"indent"`
	Padding      int    `toml:"padding" yaml:"padding"`
	BackupSuffix string `toml:"backup_suffix" yaml:"backup_suffix"`
	Backup       bool   `toml:"backup" yaml:"backup"`
	Jobs         int    `toml:"jobs" yaml:"jobs"`
	Cache        bool   `toml:"cache" yaml:"cache"`

	// Path is the config file the values came from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		IndentWidth:  2,
		Padding:      2,
		BackupSuffix: ".backup",
		Backup:       true,
		Jobs:         runtime.GOMAXPROCS(0),
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// ConfigPath is an explicit file; it must exist.
	ConfigPath string
	// StartDir is where discovery begins, "." when empty.
	StartDir string
	// EnvFile is a dotenv file; ".env" is tried when empty and missing
	// files are ignored.
	EnvFile string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves defaults, then the config file, then the environment.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	if path == "" {
		found, ok, err := Find(opts.StartDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	} else {
		// .env is optional
		_ = godotenv.Load()
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Find walks up from startDir looking for one of FileNames.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFile decodes path over cfg; keys absent from the file keep their
// current values. Unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(content), cfg)
		if err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	cfg.Path = path
	return nil
}

// Environment variables recognised by ApplyEnv.
const (
	EnvIndent       = "BEANFMT_INDENT"
	EnvPadding      = "BEANFMT_PADDING"
	EnvBackupSuffix = "BEANFMT_BACKUP_SUFFIX"
	EnvNoBackup     = "BEANFMT_NO_BACKUP"
	EnvJobs         = "BEANFMT_JOBS"
)

// ApplyEnv overrides cfg with the BEANFMT_* variables that are set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvIndent, &c.IndentWidth},
		{EnvPadding, &c.Padding},
		{EnvJobs, &c.Jobs},
	}
	for _, it := range ints {
		v, ok := lookup(it.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", it.key, err)
		}
		*it.dst = n
	}
	if v, ok := lookup(EnvBackupSuffix); ok && v != "" {
		c.BackupSuffix = v
	}
	if v, ok := lookup(EnvNoBackup); ok && v != "" {
		off, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvNoBackup, err)
		}
		c.Backup = !off
	}
	return nil
}

// Validate checks the invariants the formatter relies on.
func (c Config) Validate() error {
	var problems []string
	if c.IndentWidth < 1 {
		problems = append(problems, fmt.Sprintf("indent must be at least 1, got %d", c.IndentWidth))
	}
	if c.Padding < 1 {
		problems = append(problems, fmt.Sprintf("padding must be at least 1, got %d", c.Padding))
	}
	if c.BackupSuffix == "" {
		problems = append(problems, "backup suffix must not be empty")
	}
	if c.Jobs < 1 {
		problems = append(problems, fmt.Sprintf("jobs must be at least 1, got %d", c.Jobs))
	}
	if len(problems) > 0 {
		where := ""
		if c.Path != "" {
			where = c.Path + ": "
		}
		return fmt.Errorf("%sinvalid configuration: %s", where, strings.Join(problems, "; "))
	}
	return nil
}
