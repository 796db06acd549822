// Package classify assigns a destination category to a backup file by name.
package classify

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/docsa/moodle-migrate/internal/models"
)

// Result is the outcome of classifying one filename.
type Result struct {
	Category models.Category
	// Number is the lecture or lab number carried by the name, 0 when absent.
	Number int
	// Rule names the rule that matched, empty for the fallback.
	Rule string
}

// Rule is one entry of the ordered rule list.
type Rule struct {
	Name     string
	Category models.Category
	Match    func(name string) (number int, ok bool)
}

// Classifier evaluates rules in order; the first match wins.
type Classifier struct {
	rules []Rule
}

// Name patterns are matched against the lowercased base name. \b is ASCII
// only in RE2, so word edges are spelled out with \p{L}.
var (
	lectureNumberFirst = regexp.MustCompile(`^\s*(\d{1,3})[\s._-]*(?:лекці[яї]|лекция|лекции|lecture)`)
	lectureNumberLast  = regexp.MustCompile(`(?:^|[^\p{L}])(?:лекці[яї]|лекция|лекции|lecture)[\s._-]*№?\s*(\d{1,3})(?:[^\d]|$)`)
	labCode            = regexp.MustCompile(`(?:^|[^\p{L}])(?:лр|lr|lab)[\s._-]*№?\s*(\d{1,3})`)
	labWork            = regexp.MustCompile(`(?:лабораторн\p{L}*[\s._-]+робот\p{L}*|lab(?:oratory)?[\s._-]+work)[\s._-]*№?\s*(\d{1,3})`)
)

// A bare "exam" substring would also match "example", and "variant" would
// match "invariant".
var (
	examWord    = regexp.MustCompile(`(?:^|[^\p{L}])exam(?:s|ination)?(?:[^\p{L}]|$)`)
	variantWord = regexp.MustCompile(`(?:^|[^\p{L}])(?:варіант|variant)\p{L}*`)
)

// Default keyword sets of the keyword rules.
var (
	CourseInfoKeywords   = []string{"силабус", "syllabus", "анотація", "annotation", "критерії оцінювання", "grading criteria", "робоча програма"}
	AssessmentKeywords   = []string{"білет", "квиток", "екзамен", "ticket"}
	PresentationKeywords = []string{"лекція", "презентація", "lecture", "presentation", "slides"}
	ExampleKeywords      = []string{"приклад", "example", "demo"}
	ToolKeywords         = []string{"tool", "utility", "програма"}
)

// New builds the default classifier. extra appends keywords to the keyword
// rule of the given category; categories without a keyword rule get a new
// rule placed before the presentation keywords.
func New(extra map[models.Category][]string) *Classifier {
	keywords := map[models.Category][]string{
		models.CourseInfoCategory: CourseInfoKeywords,
		models.Assessment:         AssessmentKeywords,
		models.Presentations:      PresentationKeywords,
		models.Examples:           ExampleKeywords,
		models.Tools:              ToolKeywords,
	}

	var extraRules []Rule
	for _, cat := range models.Categories() {
		words := normalizeKeywords(extra[cat])
		if len(words) == 0 {
			continue
		}
		if base, ok := keywords[cat]; ok {
			keywords[cat] = append(append([]string(nil), base...), words...)
			continue
		}
		if cat == models.Supplementary {
			continue
		}
		extraRules = append(extraRules, KeywordRule(cat.String()+" keywords", cat, words))
	}

	rules := []Rule{
		{Name: "numbered lecture", Category: models.Lectures, Match: matchNumbered(lectureNumberFirst, lectureNumberLast)},
		{Name: "lab report", Category: models.Labs, Match: matchNumbered(labCode, labWork)},
		KeywordRule("course info keywords", models.CourseInfoCategory, keywords[models.CourseInfoCategory]),
		{
			Name:     "assessment keywords",
			Category: models.Assessment,
			Match:    anyOf(KeywordRule("", models.Assessment, keywords[models.Assessment]).Match, matchPattern(examWord), matchPattern(variantWord)),
		},
	}
	rules = append(rules, extraRules...)
	rules = append(rules,
		KeywordRule("presentation keywords", models.Presentations, keywords[models.Presentations]),
		KeywordRule("example keywords", models.Examples, keywords[models.Examples]),
		KeywordRule("tool keywords", models.Tools, keywords[models.Tools]),
	)
	return &Classifier{rules: rules}
}

// NewWithRules builds a classifier from an explicit ordered rule list.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the ordered rule list.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the category of filename. Names matching no rule are
// supplementary.
func (c *Classifier) Classify(filename string) Result {
	name := normalizeName(filename)
	for _, rule := range c.rules {
		if n, ok := rule.Match(name); ok {
			return Result{Category: rule.Category, Number: n, Rule: rule.Name}
		}
	}
	return Result{Category: models.Supplementary}
}

// KeywordRule matches names containing any of keywords. Keywords are compared
// lowercased.
func KeywordRule(name string, cat models.Category, keywords []string) Rule {
	words := normalizeKeywords(keywords)
	return Rule{
		Name:     name,
		Category: cat,
		Match: func(s string) (int, bool) {
			for _, w := range words {
				if strings.Contains(s, w) {
					return 0, true
				}
			}
			return 0, false
		},
	}
}

// matchNumbered tries each pattern in turn and returns the first captured number.
func matchNumbered(patterns ...*regexp.Regexp) func(string) (int, bool) {
	return func(s string) (int, bool) {
		for _, re := range patterns {
			m := re.FindStringSubmatch(s)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return n, true
		}
		return 0, false
	}
}

func matchPattern(re *regexp.Regexp) func(string) (int, bool) {
	return func(s string) (int, bool) {
		return 0, re.MatchString(s)
	}
}

func anyOf(matchers ...func(string) (int, bool)) func(string) (int, bool) {
	return func(s string) (int, bool) {
		for _, m := range matchers {
			if n, ok := m(s); ok {
				return n, true
			}
		}
		return 0, false
	}
}

func normalizeName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	return strings.ToLower(strings.TrimSpace(base))
}

func normalizeKeywords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
