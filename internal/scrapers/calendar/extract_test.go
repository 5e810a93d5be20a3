package calendar

import (
	"strings"
	"testing"

	"catalog-backend/internal/catalog"
	"catalog-backend/internal/weights"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testPageUrl = "https://calendar.uoguelph.ca/undergraduate-calendar/course-descriptions/cis"

func parseDoc(t testing.TB, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestExtractCourseBlock(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="courseblock">
	<span class="detail-code"><strong>CIS*1300</strong></span>
	<span class="detail-title"><strong>Intro to Programming</strong></span>
	<span class="detail-hours_html"><strong>[0.50]</strong></span>
	<div class="courseblockextra">Evaluation: Assignments 30%, Midterm 30%, Final Exam 40%</div>
</div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Equal(t, []catalog.Course{{
		Subject:     "CIS",
		Code:        "CIS*1300",
		Title:       "Intro to Programming",
		Description: "Evaluation: Assignments 30%, Midterm 30%, Final Exam 40%",
		Credits:     0.5,
		Url:         testPageUrl,
	}}, courses)

	total := 0
	components := weights.Extract(courses[0].Description)
	require.Len(t, components, 3)
	for _, c := range components {
		total += c.Weight
	}
	require.Equal(t, 100, total)
}

func TestExtractedDescriptionKeepsWeights(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="courseblock">
	<span class="detail-code">CIS*2750</span>
	<div class="courseblockextra">Midterm:&nbsp;30%, Final Exam -&nbsp;70%</div>
</div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Len(t, courses, 1)
	require.Equal(t, []weights.Component{
		{Name: "Midterm", Weight: 30},
		{Name: "Final Exam", Weight: 70},
	}, weights.Extract(courses[0].Description))
}

func TestExtractStripsPrefixes(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="course">
	<h3>MATH*1200 - Calculus I</h3>
	<p>MATH*1200 - Calculus I - Limits and derivatives. Offered as 0.75 credits.</p>
</div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Len(t, courses, 1)
	require.Equal(t, "MATH*1200", courses[0].Code)
	require.Equal(t, "MATH", courses[0].Subject)
	require.Equal(t, "Calculus I", courses[0].Title)
	require.Equal(t, "Limits and derivatives. Offered as 0.75 credits.", courses[0].Description)
	require.Equal(t, 0.75, courses[0].Credits)
}

func TestExtractBlockRules(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="courseblock"><span class="detail-title">No code here</span></div>
<div class="courseblock">
	<span class="detail-code">HIST*1010</span>
	<span class="detail-hours">1.00 credit</span>
</div>
<div class="courseblock">
	<span class="detail-code">ACCT1220</span>
	<span class="detail-title">Financial Accounting</span>
	<div class="description">First copy.</div>
</div>
<div class="courseblock">
	<span class="detail-code">ACCT*1220</span>
	<span class="detail-title">Financial Accounting</span>
	<div class="description">A second, longer copy of the course.</div>
</div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	diff := cmp.Diff([]catalog.Course{
		{Subject: "HIST", Code: "HIST*1010", Title: "HIST*1010", Credits: 1, Url: testPageUrl},
		{
			Subject:     "ACCT",
			Code:        "ACCT*1220",
			Title:       "Financial Accounting",
			Description: "First copy.",
			Credits:     catalog.DefaultCredits,
			Url:         testPageUrl,
		},
	}, courses)
	if diff != "" {
		t.Fatalf("unexpected courses (-want +got):\n%s", diff)
	}
}

func TestExtractSelectorCascade(t *testing.T) {
	// the courseblock has no code so the next block selector is used
	doc := parseDoc(t, `<html><body>
<div class="courseblock"><p>Overview of the department.</p></div>
<div class="course"><strong>PHYS*1010</strong><h4>Introductory Physics</h4></div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Len(t, courses, 1)
	require.Equal(t, "PHYS*1010", courses[0].Code)
	require.Equal(t, "Introductory Physics", courses[0].Title)
}

func TestExtractTextFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<p>Contains ABC*1000 somewhere.</p>
<p>And ABC*1000 again.</p>
<script>var ignored = "ZZZ*9999";</script>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Equal(t, []catalog.Course{{
		Subject: "ABC",
		Code:    "ABC*1000",
		Credits: 0.5,
		Url:     testPageUrl,
	}}, courses)
}

func TestExtractEmptyPage(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>Nothing to see</h1></body></html>`)
	require.Empty(t, ExtractCourses(doc, testPageUrl))
}

func TestSubjectFromUrl(t *testing.T) {
	table := []struct {
		url     string
		subject string
	}{
		{url: "https://calendar.uoguelph.ca/undergraduate-calendar/course-descriptions/cis/", subject: "CIS"},
		{url: "https://calendar.uoguelph.ca/associate-diploma/course-descriptions/dagr", subject: "DAGR"},
		{url: "https://calendar.uoguelph.ca/archive/2019-2020/", subject: "UNKNOWN"},
	}
	for _, row := range table {
		require.Equal(t, row.subject, SubjectFromUrl(row.url), row.url)
	}
}

func TestExtractCreditsSelectorWins(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="courseblock">
	<span class="detail-code">ECON*2310</span>
	<span class="detail-hours_html"><strong>[0.50]</strong></span>
	<div class="courseblockextra">Counts as 1.00 credits toward the minor.</div>
</div>
<div class="courseblock">
	<span class="detail-code">ECON*2410</span>
	<div class="courseblockextra">Counts as 1.00 credits toward the minor.</div>
</div>
</body></html>`)

	courses := ExtractCourses(doc, testPageUrl)
	require.Len(t, courses, 2)
	require.Equal(t, 0.5, courses[0].Credits)
	require.Equal(t, 1.0, courses[1].Credits)
}
