package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by all gallery commands
type Config struct {
	Root           string
	ImageryDir     string
	DBPath         string
	Addr           string
	ThreeJSVersion string
	LogLevel       string
	Minify         bool
}

// Defaults returns the built-in settings
func Defaults() map[string]any {
	home, _ := os.UserHomeDir()
	return map[string]any{
		"root":            ".",
		"imagery-dir":     filepath.Join("src", "imagery"),
		"db":              filepath.Join(home, ".gallery", "gallery.db"),
		"addr":            "localhost:8000",
		"threejs-version": "0.169.0",
		"log-level":       "info",
		"minify":          false,
	}
}

// Load merges defaults, an optional config file, GALLERY_* environment
// variables and the flags that were set, in increasing priority. With an
// empty file, gallery.yaml is looked up in the working directory.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("gallery")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		Root:           v.GetString("root"),
		ImageryDir:     v.GetString("imagery-dir"),
		DBPath:         v.GetString("db"),
		Addr:           v.GetString("addr"),
		ThreeJSVersion: v.GetString("threejs-version"),
		LogLevel:       v.GetString("log-level"),
		Minify:         v.GetBool("minify"),
	}

	// A relative imagery dir lives under the content root.
	if !filepath.IsAbs(cfg.ImageryDir) {
		cfg.ImageryDir = filepath.Join(cfg.Root, cfg.ImageryDir)
	}
	return cfg, nil
}
