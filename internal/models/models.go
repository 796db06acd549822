// Package models defines the data objects shared across moodle-migrate packages.
package models

// FileEntry describes one stored file listed in the backup manifest.
type FileEntry struct {
	ContentHash string
	Filename    string
	FilePath    string // Moodle virtual path inside the file area, e.g. "/"
	Component   string // Owning Moodle component, e.g. "mod_resource"
	FileArea    string
	MimeType    string
	Size        int64
}

// Mapping indexes manifest entries by content hash.
type Mapping map[string]FileEntry

// CourseInfo holds the course metadata read from course/course.xml.
type CourseInfo struct {
	ShortName string
	FullName  string
	Summary   string
}

// Title returns the best available human-readable course name.
func (c CourseInfo) Title() string {
	switch {
	case c.FullName != "":
		return c.FullName
	case c.ShortName != "":
		return c.ShortName
	default:
		return "Course materials"
	}
}

const (
	// ManifestFilename is the backup document listing every stored file.
	ManifestFilename = "files.xml"
	// BackupDescriptorFilename is the top-level backup descriptor.
	BackupDescriptorFilename = "moodle_backup.xml"
	// CourseFilename is the course metadata document, relative to the backup root.
	CourseFilename = "course/course.xml"
	// FilesDirname is the content-addressed store directory.
	FilesDirname = "files"
	// IndexFilename is the generated per-directory index document.
	IndexFilename = "README.md"
	// DirectoryPlaceholder is the filename Moodle uses for directory records.
	DirectoryPlaceholder = "."
)
