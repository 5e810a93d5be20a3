package catalog

import (
	"slices"
	"strings"
)

type SubjectCount struct {
	Subject string
	Count   int
}

// Aggregator merges the courses scraped from every page, keeping a single
// course per code. It is not safe for concurrent use.
type Aggregator struct {
	order         []string
	courses       map[string]Course
	subjectCounts map[string]int
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		courses:       map[string]Course{},
		subjectCounts: map[string]int{},
	}
}

// Add merges a course in. A course whose code was already seen only
// replaces the stored one when its description is strictly longer, so on a
// tie the first course wins. It returns true if the code was new.
func (a *Aggregator) Add(course Course) bool {
	existing, ok := a.courses[course.Code]
	if !ok {
		a.order = append(a.order, course.Code)
		a.courses[course.Code] = course
		a.subjectCounts[course.Subject]++
		return true
	}
	if len(course.Description) > len(existing.Description) {
		a.courses[course.Code] = course
	}
	return false
}

func (a *Aggregator) Len() int {
	return len(a.order)
}

// Courses returns the surviving courses in the order their codes were first
// seen.
func (a *Aggregator) Courses() []Course {
	out := make([]Course, len(a.order))
	for i, code := range a.order {
		out[i] = a.courses[code]
	}
	return out
}

// SubjectCounts returns the number of unique courses per subject, largest
// first, ties ordered by subject.
func (a *Aggregator) SubjectCounts() []SubjectCount {
	out := make([]SubjectCount, 0, len(a.subjectCounts))
	for subject, count := range a.subjectCounts {
		out = append(out, SubjectCount{Subject: subject, Count: count})
	}
	slices.SortFunc(out, func(a, b SubjectCount) int {
		if a.Count != b.Count {
			// descending
			return b.Count - a.Count
		}
		return strings.Compare(a.Subject, b.Subject)
	})
	return out
}
