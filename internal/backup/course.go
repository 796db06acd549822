package backup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsa/moodle-migrate/internal/models"
)

type courseDocument struct {
	XMLName   xml.Name `xml:"course"`
	ShortName string   `xml:"shortname"`
	FullName  string   `xml:"fullname"`
	Summary   string   `xml:"summary"`
}

// Validate checks that root holds every document a Moodle backup must carry.
func Validate(root string) error {
	required := []string{
		models.BackupDescriptorFilename,
		models.ManifestFilename,
		models.CourseFilename,
	}

	var missing []string
	for _, name := range required {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(name))); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Root: root, Missing: missing}
	}
	return nil
}

// ReadCourse reads the course names from course/course.xml under root.
// A missing document yields an empty CourseInfo and no error.
func ReadCourse(root string) (models.CourseInfo, error) {
	path := filepath.Join(root, filepath.FromSlash(models.CourseFilename))
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.CourseInfo{}, nil
		}
		return models.CourseInfo{}, fmt.Errorf("read course document: %w", err)
	}

	var doc courseDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return models.CourseInfo{}, &ParseError{Path: path, Err: err}
	}
	return models.CourseInfo{
		ShortName: strings.TrimSpace(doc.ShortName),
		FullName:  strings.TrimSpace(doc.FullName),
		Summary:   strings.TrimSpace(doc.Summary),
	}, nil
}
