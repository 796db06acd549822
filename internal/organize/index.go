package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docsa/moodle-migrate/internal/models"
	"github.com/docsa/moodle-migrate/internal/utils"
	"github.com/muesli/reflow/wordwrap"
)

const (
	indexWrapWidth = 80
	contentsHeader = "## Вміст"
	layoutHeader   = "## Структура"
)

// WriteIndexes writes one index document per category directory listing the
// files it holds, then the repository root index. It returns the written
// paths relative to the repository root, in the order they were written.
func (o *Organizer) WriteIndexes(course models.CourseInfo) ([]string, error) {
	var written []string
	counts := make(map[models.Category]int)

	for _, cat := range models.Categories() {
		dir := filepath.Join(o.destRoot, filepath.FromSlash(cat.Dir()))
		files, err := o.listFiles(dir)
		if err != nil {
			return written, err
		}
		if files == nil {
			continue
		}
		counts[cat] = len(files)

		rel := cat.Dir() + "/" + o.cfg.IndexName
		if err := writeDocument(filepath.Join(dir, o.cfg.IndexName), categoryIndex(cat, files)); err != nil {
			return written, err
		}
		o.logger.Debugf("Wrote index %s (%d files)", rel, len(files))
		written = append(written, rel)
	}

	if err := writeDocument(filepath.Join(o.destRoot, o.cfg.IndexName), o.rootIndex(course, counts)); err != nil {
		return written, err
	}
	written = append(written, o.cfg.IndexName)
	o.logger.Infof("Wrote %d index documents", len(written))
	return written, nil
}

// listFiles returns every regular file under dir as a sorted slash-separated
// relative path, skipping index documents. A missing dir yields nil.
func (o *Organizer) listFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	files := []string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || d.Name() == o.cfg.IndexName {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func categoryIndex(cat models.Category, files []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cat.Title())
	b.WriteString(wordwrap.String(cat.Description(), indexWrapWidth))
	b.WriteString("\n\n" + contentsHeader + "\n")
	if len(files) > 0 {
		b.WriteString("\n")
	}
	for _, f := range files {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return b.String()
}

func (o *Organizer) rootIndex(course models.CourseInfo, counts map[models.Category]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", course.Title())
	if course.ShortName != "" && course.ShortName != course.Title() {
		fmt.Fprintf(&b, "Код курсу: %s\n\n", course.ShortName)
	}
	b.WriteString(layoutHeader + "\n\n")
	for _, cat := range models.Categories() {
		fmt.Fprintf(&b, "- [%s](%s/) (%d)\n", cat.Title(), cat.Dir(), counts[cat])
	}
	return b.String()
}

func writeDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), utils.DefaultFilePerms); err != nil { //nolint:gosec
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
