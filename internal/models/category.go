package models

import (
	"fmt"
	"path"
)

// Category is a destination bucket derived from a filename.
type Category int

// Category values. The zero value is Supplementary so an unset category
// never drops a file.
const (
	Supplementary Category = iota
	Presentations
	Examples
	Tools
	Lectures
	Labs
	CourseInfoCategory
	Assessment
)

// ResourcesDirname groups the resource subcategories.
const ResourcesDirname = "resources"

type categoryMeta struct {
	name        string
	dir         string
	title       string
	description string
}

var categoryTable = map[Category]categoryMeta{
	Lectures: {
		name:        "lectures",
		dir:         "lectures",
		title:       "Лекції",
		description: "Цей каталог містить матеріали лекцій курсу, згруповані за номером лекції.",
	},
	Labs: {
		name:        "labs",
		dir:         "labs",
		title:       "Лабораторні роботи",
		description: "Цей каталог містить завдання та звіти лабораторних робіт.",
	},
	CourseInfoCategory: {
		name:        "course-info",
		dir:         "course-info",
		title:       "Інформація про курс",
		description: "Цей каталог містить силабус, анотацію та критерії оцінювання курсу.",
	},
	Assessment: {
		name:        "assessment",
		dir:         "assessment",
		title:       "Оцінювання",
		description: "Цей каталог містить екзаменаційні білети, варіанти завдань та інші матеріали контролю знань.",
	},
	Presentations: {
		name:        "presentations",
		dir:         path.Join(ResourcesDirname, "presentations"),
		title:       "Презентації та лекційні матеріали",
		description: "Цей каталог містить презентації та матеріали лекцій з курсу цифрової обробки сигналів.",
	},
	Examples: {
		name:        "examples",
		dir:         path.Join(ResourcesDirname, "examples"),
		title:       "Приклади та демонстрації",
		description: "Цей каталог містить приклади та демонстраційні матеріали для практичного засвоєння курсу.",
	},
	Tools: {
		name:        "tools",
		dir:         path.Join(ResourcesDirname, "tools"),
		title:       "Інструменти та утиліти",
		description: "Цей каталог містить програмні інструменти та утиліти для роботи з цифровою обробкою сигналів.",
	},
	Supplementary: {
		name:        "supplementary",
		dir:         path.Join(ResourcesDirname, "supplementary"),
		title:       "Додаткові матеріали",
		description: "Цей каталог містить додаткові навчальні матеріали та ресурси для поглибленого вивчення курсу.",
	},
}

// Categories returns every category in processing order.
func Categories() []Category {
	return []Category{
		Lectures,
		Labs,
		CourseInfoCategory,
		Assessment,
		Presentations,
		Examples,
		Tools,
		Supplementary,
	}
}

// TopLevelDirs returns the fixed top-level directories of the repository layout.
func TopLevelDirs() []string {
	return []string{"course-info", "lectures", "labs", ResourcesDirname, "assessment"}
}

// String returns the stable category name used in config files and logs.
func (c Category) String() string {
	if m, ok := categoryTable[c]; ok {
		return m.name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Dir returns the slash-separated destination directory relative to the repository root.
func (c Category) Dir() string { return categoryTable[c].dir }

// Title returns the heading of the category index document.
func (c Category) Title() string { return categoryTable[c].title }

// Description returns the fixed description text of the category.
func (c Category) Description() string { return categoryTable[c].description }

// IsResource reports whether the category lives under the resources directory.
func (c Category) IsResource() bool {
	switch c {
	case Presentations, Examples, Tools, Supplementary:
		return true
	}
	return false
}

// ParseCategory maps a category name back to its value.
func ParseCategory(name string) (Category, bool) {
	for c, m := range categoryTable {
		if m.name == name {
			return c, true
		}
	}
	return Supplementary, false
}
