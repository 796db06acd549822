package backup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/docsa/moodle-migrate/internal/log"
	"github.com/docsa/moodle-migrate/internal/models"
)

// manifestFile mirrors the children of a <file> element we care about.
type manifestFile struct {
	ContentHash string `xml:"contenthash"`
	Filename    string `xml:"filename"`
	FilePath    string `xml:"filepath"`
	Component   string `xml:"component"`
	FileArea    string `xml:"filearea"`
	MimeType    string `xml:"mimetype"`
	FileSize    string `xml:"filesize"`
}

// ReadManifest parses the manifest at path and maps content hashes to their
// entries. Directory placeholders and records without a hash are skipped.
// A duplicated hash keeps the last record.
func ReadManifest(path string, logger *log.Logger) (models.Mapping, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingManifest, path)
		}
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	mapping, err := decodeManifest(f, logger)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	logger.Infof("Read %d file entries from %s", len(mapping), path)
	return mapping, nil
}

func decodeManifest(r io.Reader, logger *log.Logger) (models.Mapping, error) {
	mapping := make(models.Mapping)
	dec := xml.NewDecoder(r)
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if start.Name.Local != "file" {
			continue
		}

		var rec manifestFile
		if err := dec.DecodeElement(&rec, &start); err != nil {
			return nil, err
		}

		entry, ok := rec.entry()
		if !ok {
			logger.Debugf("Skipping manifest record hash=%q filename=%q", rec.ContentHash, rec.Filename)
			continue
		}
		if prev, dup := mapping[entry.ContentHash]; dup {
			logger.Debugf("Duplicate content hash %s: %q replaces %q", entry.ContentHash, entry.Filename, prev.Filename)
		}
		mapping[entry.ContentHash] = entry
	}

	if !sawRoot {
		return nil, errors.New("empty document")
	}
	return mapping, nil
}

func (m manifestFile) entry() (models.FileEntry, bool) {
	hash := strings.TrimSpace(m.ContentHash)
	name := strings.TrimSpace(m.Filename)
	if hash == "" || name == "" || name == models.DirectoryPlaceholder {
		return models.FileEntry{}, false
	}

	size, _ := strconv.ParseInt(strings.TrimSpace(m.FileSize), 10, 64)
	return models.FileEntry{
		ContentHash: strings.ToLower(hash),
		Filename:    name,
		FilePath:    strings.TrimSpace(m.FilePath),
		Component:   strings.TrimSpace(m.Component),
		FileArea:    strings.TrimSpace(m.FileArea),
		MimeType:    strings.TrimSpace(m.MimeType),
		Size:        size,
	}, true
}
