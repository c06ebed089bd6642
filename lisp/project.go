package lisp

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ProjectFile is the name of the project configuration file.
const ProjectFile = "kaa.toml"

// ProjectConfig represents a kaa.toml project configuration file.
//
//	search-path = ["src", "vendor"]
//	namespace = "app"
//	max-depth = 2000
type ProjectConfig struct {
	// SearchPath lists directories searched for namespace source files.
	// Relative paths are relative to the directory holding kaa.toml.
	SearchPath []string `toml:"search-path"`
	// Namespace is the namespace front ends evaluate code in.  It defaults
	// to DefaultNamespace.
	Namespace string `toml:"namespace"`
	// MaxDepth overrides DefaultMaxDepth when it is non-zero.
	MaxDepth int `toml:"max-depth"`
}

// LoadProjectConfig loads a kaa.toml file from path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("parsing %s: unknown key %s", path, undecoded[0])
	}
	return &config, nil
}

// FindProjectConfig searches for kaa.toml starting from dir and walking up
// to parent directories, stopping at a .git directory.  It returns the
// directory holding kaa.toml and the parsed config, or ("", nil, nil) if no
// file was found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return dir, config, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// DefaultNamespace returns the namespace named by c, or DefaultNamespace.
func (c *ProjectConfig) DefaultNamespace() string {
	if c == nil || c.Namespace == "" {
		return DefaultNamespace
	}
	return c.Namespace
}

// Configs returns the session configuration described by c.  Relative search
// path entries are joined to dir, the directory holding kaa.toml.
func (c *ProjectConfig) Configs(dir string) []Config {
	if c == nil {
		return nil
	}
	var config []Config
	if len(c.SearchPath) > 0 {
		paths := make([]string, len(c.SearchPath))
		for i, p := range c.SearchPath {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			paths[i] = p
		}
		config = append(config, WithSearchPath(paths...))
	}
	if c.MaxDepth != 0 {
		config = append(config, WithMaxDepth(c.MaxDepth))
	}
	return config
}
