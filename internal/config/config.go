// Package config loads the migration configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsa/moodle-migrate/internal/models"
	"github.com/docsa/moodle-migrate/internal/utils"
	"gopkg.in/yaml.v3"
)

// LectureNumberPlaceholder is replaced by the lecture number in LectureDirTemplate.
const LectureNumberPlaceholder = "{number}"

// AppConfig defines the moodle-migrate configuration options.
type AppConfig struct {
	LogFile            string // Run log file, mirrored with the console (default: "migration.log")
	Debug              bool
	PruneShards        bool // Remove copied blobs and empty shard directories from the backup (default: false)
	Validate           bool // Check the backup carries every required document (default: true)
	ManifestName       string
	IndexName          string
	LectureDirTemplate string // Per-lecture directory name, see LectureNumberPlaceholder (default: "lecture_{number}")
	Keywords           map[models.Category][]string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		LogFile:            "migration.log",
		Debug:              false,
		PruneShards:        false,
		Validate:           true,
		ManifestName:       models.ManifestFilename,
		IndexName:          models.IndexFilename,
		LectureDirTemplate: "lecture_" + LectureNumberPlaceholder,
		Keywords:           map[models.Category][]string{},
	}
}

// LectureDir returns the directory name of lecture n.
func (cfg *AppConfig) LectureDir(n int) string {
	return strings.ReplaceAll(cfg.LectureDirTemplate, LectureNumberPlaceholder, fmt.Sprint(n))
}

func normalizeList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		items := []string{}
		for _, part := range strings.Split(v, ",") {
			if text := strings.TrimSpace(part); text != "" {
				items = append(items, text)
			}
		}
		return items
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return []string{}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func stringValue(data map[string]any, key string) (string, bool) {
	s, ok := data[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// applyValues sets every key present in data on cfg and leaves the rest alone.
func applyValues(cfg *AppConfig, data map[string]any) error {
	if logFile, ok := stringValue(data, "log_file"); ok {
		cfg.LogFile = logFile
	}
	if manifest, ok := stringValue(data, "manifest_name"); ok {
		if utils.SafeFilename(manifest) != manifest {
			return fmt.Errorf("manifest_name %q must be a plain file name", manifest)
		}
		cfg.ManifestName = manifest
	}
	if index, ok := stringValue(data, "index_name"); ok {
		if utils.SafeFilename(index) != index {
			return fmt.Errorf("index_name %q must be a plain file name", index)
		}
		cfg.IndexName = index
	}
	if tmpl, ok := stringValue(data, "lecture_dir_template"); ok {
		if !strings.Contains(tmpl, LectureNumberPlaceholder) {
			return fmt.Errorf("lecture_dir_template %q must contain %s", tmpl, LectureNumberPlaceholder)
		}
		if sample := strings.ReplaceAll(tmpl, LectureNumberPlaceholder, "1"); utils.SafeFilename(sample) != sample {
			return fmt.Errorf("lecture_dir_template %q must be a single directory name", tmpl)
		}
		cfg.LectureDirTemplate = tmpl
	}

	cfg.Debug = coerceBool(data["debug"], cfg.Debug)
	cfg.PruneShards = coerceBool(data["prune_shards"], cfg.PruneShards)
	cfg.Validate = coerceBool(data["validate"], cfg.Validate)

	if raw, ok := data["keywords"]; ok {
		keywords, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("keywords must be a mapping of category to keyword list")
		}
		for name, list := range keywords {
			cat, ok := models.ParseCategory(strings.TrimSpace(name))
			if !ok {
				return fmt.Errorf("unknown category %q in keywords", name)
			}
			cfg.Keywords[cat] = append(cfg.Keywords[cat], normalizeList(list)...)
		}
	}
	return nil
}

func parseConfig(data map[string]any) (*AppConfig, error) {
	cfg := DefaultConfig()
	if err := applyValues(cfg, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultConfigPaths returns the config files looked up when no path is given.
func DefaultConfigPaths() []string {
	base := filepath.Join(getConfigDir(), "moodle-migrate")
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
	}
}

// LoadConfig reads the configuration from configPath, or from the first
// default location that exists when configPath is empty. An explicit path
// must exist; missing default files yield DefaultConfig.
func LoadConfig(configPath string) (*AppConfig, error) {
	paths := DefaultConfigPaths()
	explicit := configPath != ""
	if explicit {
		expanded, err := utils.ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !explicit {
				continue
			}
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg, err := parseConfig(yamlData)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
		}
		return cfg, nil
	}

	return DefaultConfig(), nil
}
