package config

import (
	"fmt"
	"strings"
)

// OverridePrefix prefixes every --config key.
const OverridePrefix = "mm."

// parseCLIConfigOverrides parses --config=mm.key=value format.
// Returns a map suitable for applyValues(). A keywords.<category> key
// accumulates its values under the keywords mapping.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keywords := make(map[string]any)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: %skey=value (note: use = not space)", override, OverridePrefix)
		}

		fullKey := strings.TrimSpace(parts[0])
		value := parts[1]

		if !strings.HasPrefix(fullKey, OverridePrefix) {
			return nil, fmt.Errorf("config override key must start with '%s': %q", OverridePrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, OverridePrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		if category, ok := strings.CutPrefix(key, "keywords."); ok {
			prev, _ := keywords[category].([]any)
			for _, word := range normalizeList(value) {
				prev = append(prev, word)
			}
			keywords[category] = prev
			continue
		}
		if _, known := knownKeys[key]; !known {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		result[key] = value
	}

	if len(keywords) > 0 {
		result["keywords"] = keywords
	}
	return result, nil
}

var knownKeys = map[string]struct{}{
	"log_file":             {},
	"debug":                {},
	"prune_shards":         {},
	"validate":             {},
	"manifest_name":        {},
	"index_name":           {},
	"lecture_dir_template": {},
}

// ApplyCLIOverrides applies --config overrides on top of the loaded config.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	return applyValues(cfg, data)
}
