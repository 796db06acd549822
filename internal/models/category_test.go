package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()

	assert.Len(t, cats, 8)
	assert.Equal(t, Lectures, cats[0])
	assert.Equal(t, Supplementary, cats[len(cats)-1])
}

func TestCategoryDirs(t *testing.T) {
	tests := []struct {
		cat      Category
		dir      string
		resource bool
	}{
		{Lectures, "lectures", false},
		{Labs, "labs", false},
		{CourseInfoCategory, "course-info", false},
		{Assessment, "assessment", false},
		{Presentations, "resources/presentations", true},
		{Examples, "resources/examples", true},
		{Tools, "resources/tools", true},
		{Supplementary, "resources/supplementary", true},
	}

	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			assert.Equal(t, tt.dir, tt.cat.Dir())
			assert.Equal(t, tt.resource, tt.cat.IsResource())
			assert.NotEmpty(t, tt.cat.Title())
			assert.NotEmpty(t, tt.cat.Description())
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}

	_, ok := ParseCategory("homework")
	assert.False(t, ok)
}

func TestZeroCategoryIsSupplementary(t *testing.T) {
	var c Category
	assert.Equal(t, Supplementary, c)
	assert.Equal(t, "Category(42)", Category(42).String())
}

func TestCourseInfoTitle(t *testing.T) {
	assert.Equal(t, "Digital Signal Processing", CourseInfo{ShortName: "DSP", FullName: "Digital Signal Processing"}.Title())
	assert.Equal(t, "DSP", CourseInfo{ShortName: "DSP"}.Title())
	assert.Equal(t, "Course materials", CourseInfo{}.Title())
}
