package weights

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type synonym struct {
	key       string
	canonical string
}

// synonyms is scanned in order and the first key contained in the lowercased
// label wins. Order is significant: "lab" is checked before "midterm" and
// "final" before "exam".
var synonyms = []synonym{
	{key: "assignment", canonical: "Assignments"},
	{key: "assignments", canonical: "Assignments"},
	{key: "assign", canonical: "Assignments"},
	{key: "lab", canonical: "Labs"},
	{key: "labs", canonical: "Labs"},
	{key: "laboratory", canonical: "Labs"},
	{key: "midterm", canonical: "Midterm"},
	{key: "midterm exam", canonical: "Midterm"},
	{key: "mid term", canonical: "Midterm"},
	{key: "final", canonical: "Final Exam"},
	{key: "final exam", canonical: "Final Exam"},
	{key: "final examination", canonical: "Final Exam"},
	{key: "exam", canonical: "Final Exam"},
	{key: "examination", canonical: "Final Exam"},
	{key: "quiz", canonical: "Quizzes"},
	{key: "quizzes", canonical: "Quizzes"},
	{key: "project", canonical: "Project"},
	{key: "projects", canonical: "Project"},
	{key: "presentation", canonical: "Presentation"},
	{key: "presentations", canonical: "Presentation"},
	{key: "participation", canonical: "Participation"},
	{key: "attendance", canonical: "Attendance"},
	{key: "homework", canonical: "Homework"},
	{key: "home work", canonical: "Homework"},
}

// NormalizeName maps a raw component label onto its canonical name, or
// title-cases the label if it is not a known synonym.
func NormalizeName(label string) string {
	label = strings.TrimSpace(label)
	lower := strings.ToLower(label)
	for _, s := range synonyms {
		if strings.Contains(lower, s.key) {
			return s.canonical
		}
	}

	words := strings.Fields(label)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
