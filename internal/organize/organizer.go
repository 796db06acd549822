// Package organize copies the files of a Moodle backup into a categorized
// repository layout and writes an index document per category.
package organize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/docsa/moodle-migrate/internal/backup"
	"github.com/docsa/moodle-migrate/internal/classify"
	"github.com/docsa/moodle-migrate/internal/config"
	"github.com/docsa/moodle-migrate/internal/log"
	"github.com/docsa/moodle-migrate/internal/models"
	"github.com/docsa/moodle-migrate/internal/utils"
	"github.com/dustin/go-humanize"
)

var (
	osMkdirAll = os.MkdirAll
	copyFile   = utils.CopyFile
)

// Placement is the planned destination of one manifest entry.
type Placement struct {
	Entry  models.FileEntry
	Result classify.Result
	// RelPath is the destination relative to the repository root, slash separated.
	RelPath string
}

// Organizer runs one migration from a backup directory into a repository.
type Organizer struct {
	backupRoot string
	destRoot   string
	cfg        *config.AppConfig
	classifier *classify.Classifier
	store      *backup.Store
	logger     *log.Logger
}

// New returns an organizer for the given backup and destination. A nil cfg
// uses config.DefaultConfig and a nil logger discards output.
func New(backupRoot, destRoot string, cfg *config.AppConfig, logger *log.Logger) *Organizer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Organizer{
		backupRoot: backupRoot,
		destRoot:   destRoot,
		cfg:        cfg,
		classifier: classify.New(cfg.Keywords),
		store:      backup.NewStore(backupRoot),
		logger:     logger,
	}
}

// Run performs the whole migration. Missing blobs are skipped; any other
// failure aborts the run and leaves already copied files in place.
func (o *Organizer) Run(ctx context.Context) (*Report, error) {
	report := newReport()

	if err := o.EnsureLayout(); err != nil {
		return report, err
	}

	mapping, err := backup.ReadManifest(filepath.Join(o.backupRoot, o.cfg.ManifestName), o.logger)
	if err != nil {
		return report, err
	}

	course, err := backup.ReadCourse(o.backupRoot)
	if err != nil {
		o.logger.Warnf("Could not read course metadata: %v", err)
	}

	plan := o.Plan(mapping)
	// owners maps each written destination to the hash whose content it holds.
	owners := make(map[string]string)
	for _, cat := range models.Categories() {
		for _, p := range plan[cat] {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			ok, err := o.place(p, report)
			if err != nil {
				return report, err
			}
			if ok {
				owners[p.RelPath] = p.Entry.ContentHash
			}
		}
	}

	if o.cfg.PruneShards {
		if err := o.prune(survivingHashes(owners), report); err != nil {
			return report, err
		}
	}

	indexes, err := o.WriteIndexes(course)
	if err != nil {
		return report, err
	}
	report.Indexes = indexes

	o.logger.Infof("Organized %d files (%s), skipped %d", report.Copied, humanize.Bytes(uint64(report.Bytes)), report.Skipped) //nolint:gosec
	return report, nil
}

// EnsureLayout creates the top-level directories and every category
// directory. Existing directories are left untouched.
func (o *Organizer) EnsureLayout() error {
	dirs := models.TopLevelDirs()
	for _, cat := range models.Categories() {
		if cat.IsResource() {
			dirs = append(dirs, cat.Dir())
		}
	}

	for _, dir := range dirs {
		path := filepath.Join(o.destRoot, filepath.FromSlash(dir))
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			o.logger.Debugf("Directory exists: %s", path)
			continue
		}
		if err := osMkdirAll(path, utils.DefaultDirPerms); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
		o.logger.Infof("Created directory: %s", path)
	}
	return nil
}

// Plan classifies every entry and groups the placements by category. Each
// group is sorted by destination then content hash.
func (o *Organizer) Plan(mapping models.Mapping) map[models.Category][]Placement {
	plan := make(map[models.Category][]Placement)
	for _, entry := range mapping {
		name := utils.SafeFilename(entry.Filename)
		if name == "" {
			o.logger.Warnf("Skipping %s: unusable filename %q", entry.ContentHash, entry.Filename)
			continue
		}

		res := o.classifier.Classify(name)
		rel := res.Category.Dir() + "/" + name
		if res.Category == models.Lectures && res.Number > 0 {
			rel = res.Category.Dir() + "/" + o.cfg.LectureDir(res.Number) + "/" + name
		}
		plan[res.Category] = append(plan[res.Category], Placement{Entry: entry, Result: res, RelPath: rel})
	}

	for _, group := range plan {
		sort.Slice(group, func(i, j int) bool {
			if group[i].RelPath != group[j].RelPath {
				return group[i].RelPath < group[j].RelPath
			}
			return group[i].Entry.ContentHash < group[j].Entry.ContentHash
		})
	}
	return plan
}

// place copies one planned entry. It reports false when the blob is absent.
func (o *Organizer) place(p Placement, report *Report) (bool, error) {
	src, ok := o.store.Resolve(p.Entry.ContentHash)
	if !ok {
		o.logger.Infof("Skipping %s: source file %s not found", p.Entry.Filename, p.Entry.ContentHash)
		report.Skipped++
		return false, nil
	}

	dst := filepath.Join(o.destRoot, filepath.FromSlash(p.RelPath))
	if report.seen[p.RelPath] {
		o.logger.Warnf("%s is listed more than once, keeping the copy of %s", p.RelPath, p.Entry.ContentHash)
	}

	n, err := copyFile(src, dst)
	if err != nil {
		return false, fmt.Errorf("copy %s to %s: %w", p.Entry.ContentHash, p.RelPath, err)
	}

	report.seen[p.RelPath] = true
	report.Copied++
	report.Bytes += n
	report.PerCategory[p.Result.Category]++
	o.logger.Infof("Copied %s to %s (%s)", p.Entry.Filename, p.RelPath, humanize.Bytes(uint64(n))) //nolint:gosec
	if p.Result.Rule != "" {
		o.logger.Debugf("%s matched rule %q", p.Entry.Filename, p.Result.Rule)
	}
	return true, nil
}

// survivingHashes returns the sorted hashes whose content is still present at
// a destination. A blob overwritten by a later entry of the same name is left out.
func survivingHashes(owners map[string]string) []string {
	hashes := make([]string, 0, len(owners))
	for _, hash := range owners {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)
	return hashes
}

// prune removes the given blobs and then every shard directory left empty.
func (o *Organizer) prune(hashes []string, report *Report) error {
	for _, hash := range hashes {
		if err := o.store.Remove(hash); err != nil {
			return err
		}
		report.PrunedBlobs++
	}

	shards, err := o.store.PruneEmptyShards()
	if err != nil {
		return err
	}
	report.PrunedShards = shards
	o.logger.Infof("Removed %d copied files and %d empty shard directories from %s", report.PrunedBlobs, shards, o.store.Root)
	return nil
}
