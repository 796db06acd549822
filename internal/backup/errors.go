// Package backup reads an extracted Moodle course backup: the file manifest,
// the course descriptor and the content-addressed file store.
package backup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingManifest is returned when the backup has no file manifest.
var ErrMissingManifest = errors.New("backup manifest not found")

// ParseError reports a malformed backup document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError lists the required backup files that are missing.
type ValidationError struct {
	Root    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid backup %s: required files not found: %s", e.Root, strings.Join(e.Missing, ", "))
}
