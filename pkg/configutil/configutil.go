package configutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localPath turns "dir/config.json5" into "dir/config.local.json5".
func localPath(name string) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)
}

func readInto[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	var parsed T
	err = json5.Unmarshal(contents, &parsed)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	err = mergo.Merge(out, parsed, mergo.WithOverride)
	if err != nil {
		return false, fmt.Errorf("merge %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads a json5 configuration file, `name` should come with a file
// extension. The following files are merged on top of each other, where a
// higher number takes priority.
//
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// os.ErrNotExist is returned if neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	return out, ReadConfigInto(name, &out)
}

// ReadConfigInto is ReadConfig but it merges the files over whatever is
// already in out, which lets callers provide defaults.
func ReadConfigInto[T any](name string, out *T) error {
	foundDefault, err := readInto(name, out)
	if err != nil {
		return err
	}
	foundLocal, err := readInto(localPath(name), out)
	if err != nil {
		return err
	}
	if !foundDefault && !foundLocal {
		return os.ErrNotExist
	}
	return nil
}

// ReadRecursively is ReadConfig but it goes up the filesystem from the
// working directory until it finds a directory containing the file.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	current, err := os.Getwd()
	if err != nil {
		return out, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return out, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return out, os.ErrNotExist
		}
		current = parent
	}
}
