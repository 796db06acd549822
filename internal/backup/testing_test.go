package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type manifestRecord struct {
	hash, name string
}

func manifestXML(records ...manifestRecord) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<files>\n")
	for i, r := range records {
		b.WriteString(`  <file id="` + string(rune('1'+i)) + `">` + "\n")
		b.WriteString("    <contenthash>" + r.hash + "</contenthash>\n")
		b.WriteString("    <contextid>42</contextid>\n")
		b.WriteString("    <component>mod_resource</component>\n")
		b.WriteString("    <filearea>content</filearea>\n")
		b.WriteString("    <filepath>/</filepath>\n")
		b.WriteString("    <filename>" + r.name + "</filename>\n")
		b.WriteString("    <filesize>12</filesize>\n")
		b.WriteString("    <mimetype>application/pdf</mimetype>\n")
		b.WriteString("  </file>\n")
	}
	b.WriteString("</files>\n")
	return b.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
