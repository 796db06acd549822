// Package utils holds small filesystem helpers shared by the migration packages.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirPerms is used for every directory the migration creates.
	DefaultDirPerms = 0o750
	// DefaultFilePerms is used for generated documents.
	DefaultFilePerms = 0o644
)

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// SafeFilename reduces name to a single path element so it cannot escape the
// directory it is written to. It returns "" when nothing usable remains.
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(filepath.Clean("/" + name))
	switch name {
	case "/", ".", "..":
		return ""
	}
	return name
}
