package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// layers returns the config files to merge for a given name,
// lowest priority first. ex. "config.json5" -> "config.local.json5"
func layers(name string) []string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return []string{name, base + ".local" + ext}
}

// ReadConfig reads `<name>` and merges `<base>.local.<ext>` over it,
// where higher priority wins. returns os.ErrNotExist when neither
// file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for i, path := range layers(name) {
		buf, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}

		var layer T
		err = json5.Unmarshal(buf, &layer)
		if err != nil {
			return out, err
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		if i > 0 {
			slog.Info("merging config with local overrides", "local", path)
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig but it walks up the filesystem from
// the cwd until it finds a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}
