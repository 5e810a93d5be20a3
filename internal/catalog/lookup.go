package catalog

import (
	"context"
	"slices"
	"strings"

	"catalog-backend/internal/weights"

	"github.com/antzucaro/matchr"
)

type CourseWeightings struct {
	Course
	Weightings []weights.Component `json:"weightings"`
}

// Lookup serves courses at read time, deriving weightings from the stored
// description on every request.
type Lookup struct {
	store Store
}

func NewLookup(store Store) Lookup {
	return Lookup{store: store}
}

func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	_, canonical, ok := ParseCode(code)
	if !ok {
		return code
	}
	return canonical
}

func (l Lookup) CourseWithWeightings(ctx context.Context, code string) (CourseWeightings, error) {
	course, err := l.store.Course(ctx, NormalizeCode(code))
	if err != nil {
		return CourseWeightings{}, err
	}
	return CourseWeightings{
		Course:     course,
		Weightings: weights.Extract(course.Description),
	}, nil
}

func (l Lookup) Courses(ctx context.Context, subject string) ([]Course, error) {
	return l.store.Courses(ctx, strings.ToUpper(strings.TrimSpace(subject)))
}

// Suggest returns up to n stored codes that look the most like code.
func (l Lookup) Suggest(ctx context.Context, code string, n int) ([]string, error) {
	codes, err := l.store.Codes(ctx)
	if err != nil {
		return nil, err
	}
	return closestCodes(NormalizeCode(code), codes, n), nil
}

func closestCodes(target string, codes []string, n int) []string {
	type scored struct {
		code       string
		similarity float64
	}
	candidates := make([]scored, len(codes))
	for i, c := range codes {
		candidates[i] = scored{
			code:       c,
			similarity: matchr.JaroWinkler(target, c, false),
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		// the 1 and -1 are flipped to make it sort descending
		if a.similarity < b.similarity {
			return 1
		}
		if a.similarity > b.similarity {
			return -1
		}
		return 0
	})

	out := []string{}
	for i := 0; i < len(candidates) && i < n; i++ {
		out = append(out, candidates[i].code)
	}
	return out
}
