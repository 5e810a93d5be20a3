// Package weights infers assessment weighting schemes ("Midterm: 30%") from
// free-form course descriptions.
package weights

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Component is one graded element of a course and its percentage of the
// final grade.
type Component struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// DefaultComponents is what Extract returns when a description mentions no
// weighting at all.
var DefaultComponents = []Component{
	{Name: "Assignments", Weight: 30},
	{Name: "Midterm", Weight: 30},
	{Name: "Final Exam", Weight: 40},
}

var (
	labelWeightRegex = regexp.MustCompile(`(?i)(\w[\w\s]*?)\s*[:\-–]\s*(\d{1,3})\s*%`)
	// sections run until the next blank line or the end of the text
	evaluationSectionRegex = regexp.MustCompile(`(?is)evaluation[:\s]+(.*?)(?:\n\n|$)`)
	distributionRegex      = regexp.MustCompile(`(?is)(?:assessment|mark|grade)\s*(?:weighting|distribution)[:\s]+(.*?)(?:\n\n|$)`)
)

// weightMap is a name -> weight map that remembers the order names were
// first inserted in.
type weightMap struct {
	order   []string
	weights map[string]int
}

func (m *weightMap) set(name string, weight int) {
	if _, ok := m.weights[name]; !ok {
		m.order = append(m.order, name)
	}
	m.weights[name] = weight
}

func (m *weightMap) components() []Component {
	out := make([]Component, len(m.order))
	for i, name := range m.order {
		out[i] = Component{Name: name, Weight: m.weights[name]}
	}
	return out
}

type match struct {
	label  string
	weight int
}

func findMatches(text string) []match {
	var out []match
	for _, groups := range labelWeightRegex.FindAllStringSubmatch(text, -1) {
		weight, err := strconv.Atoi(groups[2])
		if err != nil || weight <= 0 || weight > 100 {
			continue
		}
		out = append(out, match{
			label:  strings.TrimSpace(groups[1]),
			weight: weight,
		})
	}
	return out
}

// overwriteFromSection applies every match inside the section captured by
// sectionRegex, replacing whatever weight was found before.
func overwriteFromSection(found *weightMap, description string, sectionRegex *regexp.Regexp) {
	section := sectionRegex.FindStringSubmatch(description)
	if len(section) < 2 {
		return
	}
	for _, m := range findMatches(section[1]) {
		if m.label == "" {
			continue
		}
		found.set(NormalizeName(m.label), m.weight)
	}
}

// foldSpaces turns non-ASCII whitespace such as the no-break space left by
// &nbsp; into a plain space, since \s in the patterns only matches ASCII.
func foldSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
}

// Extract recovers the weighting components mentioned in a course
// description. It never fails, descriptions without any recognizable
// weighting get DefaultComponents.
func Extract(description string) []Component {
	description = foldSpaces(description)
	found := &weightMap{weights: map[string]int{}}

	for _, m := range findMatches(description) {
		if len(m.label) <= 2 || len(m.label) >= 50 {
			continue
		}
		name := NormalizeName(m.label)
		if existing, ok := found.weights[name]; ok && existing >= m.weight {
			continue
		}
		found.set(name, m.weight)
	}

	overwriteFromSection(found, description, evaluationSectionRegex)
	overwriteFromSection(found, description, distributionRegex)

	components := found.components()
	if len(components) == 0 {
		out := make([]Component, len(DefaultComponents))
		copy(out, DefaultComponents)
		return out
	}

	total := 0
	for _, c := range components {
		total += c.Weight
	}
	// rounding each component on its own means the result may be 99 or 101
	if total > 100 {
		for i, c := range components {
			components[i].Weight = int(math.Round(float64(c.Weight) / float64(total) * 100))
		}
	}

	return components
}
