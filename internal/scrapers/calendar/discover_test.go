package calendar

import (
	"context"
	"slices"
	"testing"

	"catalog-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

const testBaseUrl = "https://calendar.example.edu"

func TestDiscover(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		SectionIndexUrl(testBaseUrl, "undergraduate-calendar"): `<html><body>
<a href="/undergraduate-calendar/course-descriptions/cis/">Computing</a>
<a href="/undergraduate-calendar/course-descriptions/cis">Computing again</a>
<a href="/undergraduate-calendar/course-descriptions/newsub/">A new subject</a>
<a href="/undergraduate-calendar/course-descriptions/#top">Top</a>
<a href="/undergraduate-calendar/course-descriptions/calendar.pdf">PDF</a>
<a href="https://elsewhere.example.com/undergraduate-calendar/course-descriptions/foo/">Elsewhere</a>
<a href="/undergraduate-calendar/programs/">Programs</a>
</body></html>`,
	}}
	tel := telemetry.NewRecorder()

	pages := Discover(context.Background(), fetcher, testBaseUrl, tel)

	require.Equal(t, []string{
		testBaseUrl + "/undergraduate-calendar/course-descriptions/cis",
		testBaseUrl + "/undergraduate-calendar/course-descriptions/newsub",
	}, pages[:2])
	require.Len(t, pages, 1+len(Sections)*len(KnownSubjects))

	for _, section := range Sections {
		require.True(t, slices.Contains(pages, SubjectUrl(testBaseUrl, section, "math")), section)
	}

	// the two index pages that do not exist are reported and skipped
	require.Len(t, tel.Find("warning", report_discover), 2)
}

func TestDiscoverNoIndexPages(t *testing.T) {
	pages := Discover(context.Background(), &fakeFetcher{}, testBaseUrl, telemetry.NewRecorder())
	require.Len(t, pages, len(Sections)*len(KnownSubjects))
}

func TestKnownSubjectsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, subject := range KnownSubjects {
		require.False(t, seen[subject], subject)
		seen[subject] = true
	}
}
