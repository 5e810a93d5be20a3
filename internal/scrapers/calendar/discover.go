package calendar

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"catalog-backend/internal/components/telemetry"
	"catalog-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var subjectPathRegex = regexp.MustCompile(`^/[^/]+/course-descriptions/[A-Za-z]+/?$`)

func joinUrl(baseUrl string, segments ...string) string {
	return strings.TrimSuffix(baseUrl, "/") + "/" + strings.Join(segments, "/")
}

// SectionIndexUrl is the page that links to every subject of a section.
func SectionIndexUrl(baseUrl, section string) string {
	return joinUrl(baseUrl, section, "course-descriptions") + "/"
}

func SubjectUrl(baseUrl, section, subject string) string {
	return joinUrl(baseUrl, section, "course-descriptions", strings.ToLower(subject))
}

// normalizeSubjectUrl drops the trailing slash, query and fragment so that
// a linked page and a synthesized one compare equal.
func normalizeSubjectUrl(link *url.URL) string {
	out := *link
	out.RawQuery = ""
	out.Fragment = ""
	out.RawFragment = ""
	out.Path = strings.TrimSuffix(out.Path, "/")
	out.RawPath = ""
	return out.String()
}

type urlSet struct {
	order []string
	seen  map[string]struct{}
}

func (s *urlSet) add(u string) {
	if _, ok := s.seen[u]; ok {
		return
	}
	s.seen[u] = struct{}{}
	s.order = append(s.order, u)
}

func subjectLinks(indexUrl *url.URL, doc *goquery.Document) []string {
	var out []string
	anchors := htmlutil.GetAnchors(indexUrl, doc.Find(`a[href*="/course-descriptions/"]`))
	for _, a := range anchors {
		if a.Url.Fragment != "" {
			continue
		}
		if !strings.EqualFold(a.Url.Hostname(), indexUrl.Hostname()) {
			continue
		}
		if strings.HasSuffix(strings.ToLower(a.Url.Path), ".pdf") {
			continue
		}
		if !subjectPathRegex.MatchString(a.Url.Path) {
			continue
		}
		out = append(out, normalizeSubjectUrl(a.Url))
	}
	return out
}

// Discover returns every subject page to scrape: the subjects linked from
// each section index followed by every known subject in every section,
// without duplicates. An index page that cannot be fetched is reported and
// skipped.
func Discover(ctx context.Context, fetcher Fetcher, baseUrl string, tel telemetry.API) []string {
	tel = telemetry.NewScopedAPI("calendar", tel)
	set := &urlSet{seen: map[string]struct{}{}}

	for _, section := range Sections {
		index := SectionIndexUrl(baseUrl, section)
		indexUrl, err := url.Parse(index)
		if err != nil {
			tel.ReportBroken(report_discover, fmt.Errorf("parse index url: %w", err), index)
			continue
		}

		body, err := fetcher.Fetch(ctx, index)
		if err != nil {
			tel.ReportWarning(report_discover, err, section)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			tel.ReportWarning(report_discover, fmt.Errorf("parse index page: %w", err), section)
			continue
		}

		links := subjectLinks(indexUrl, doc)
		for _, link := range links {
			set.add(link)
		}
		tel.ReportDebug("discovered subject links", section, len(links))
	}

	linked := len(set.order)
	for _, section := range Sections {
		for _, subject := range KnownSubjects {
			set.add(SubjectUrl(baseUrl, section, subject))
		}
	}

	tel.ReportDebug(
		"discovered subject pages",
		fmt.Sprintf("%d linked", linked),
		fmt.Sprintf("%d total", len(set.order)),
	)
	return set.order
}
