package calendar

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"catalog-backend/internal/catalog"
	"catalog-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	blockSelectors = []string{
		"div.courseblock",
		"div.course",
		".courseblock",
		".course",
	}
	codeSelectors = []string{
		"span.detail-code strong",
		"span.detail-code",
		".detail-code strong",
		".detail-code",
		`strong:contains("*")`,
	}
	titleSelectors = []string{
		"span.detail-title strong",
		"span.detail-title",
		".detail-title strong",
		".detail-title",
		"h3",
		"h4",
	}
	descriptionSelectors = []string{
		"div.courseblockextra",
		".courseblockextra",
		"div.description",
		".description",
		"p",
	}
	creditsSelectors = []string{
		"span.detail-hours_html strong",
		"span.detail-hours_html",
		".detail-hours_html",
		"span.detail-hours strong",
		".detail-hours",
	}
)

var (
	strictCodeRegex     = regexp.MustCompile(`([A-Z]{2,4})\*(\d{4})`)
	codePrefixRegex     = regexp.MustCompile(`(?i)^[A-Z]{2,4}\*?\d{4}\s*[-–]\s*`)
	bracketCreditsRegex = regexp.MustCompile(`\[(\d+\.?\d*)\]`)
	unitCreditsRegex    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:credit|unit)`)
	subjectUrlRegex     = regexp.MustCompile(`(?i)/([a-z]+)/?$`)
)

// fieldExtractor reads one field out of a course block, ok is false when the
// field could not be found.
type fieldExtractor func(block *goquery.Selection) (value string, ok bool)

// firstOf tries every extractor in order and returns the first hit.
func firstOf(block *goquery.Selection, extractors []fieldExtractor) (string, bool) {
	for _, extract := range extractors {
		value, ok := extract(block)
		if ok {
			return value, true
		}
	}
	return "", false
}

func selectorExtractors(selectors []string, read func(sel *goquery.Selection) (string, bool)) []fieldExtractor {
	out := make([]fieldExtractor, len(selectors))
	for i, selector := range selectors {
		selector := selector
		out[i] = func(block *goquery.Selection) (string, bool) {
			sel := block.Find(selector)
			if sel.Length() == 0 {
				return "", false
			}
			return read(sel)
		}
	}
	return out
}

func readCode(text string) (string, bool) {
	_, code, ok := catalog.ParseCode(text)
	return code, ok
}

var codeExtractors = append(
	selectorExtractors(codeSelectors, func(sel *goquery.Selection) (string, bool) {
		return readCode(sel.First().Text())
	}),
	// the code is often plain text at the start of the block
	func(block *goquery.Selection) (string, bool) {
		match := strictCodeRegex.FindString(block.Text())
		if match == "" {
			return "", false
		}
		return readCode(match)
	},
)

var titleExtractors = selectorExtractors(titleSelectors, func(sel *goquery.Selection) (string, bool) {
	title := htmlutil.NormalizeText(sel.First().Text())
	title = strings.TrimSpace(codePrefixRegex.ReplaceAllString(title, ""))
	return title, title != ""
})

func descriptionExtractors(title string) []fieldExtractor {
	var titlePrefix *regexp.Regexp
	if title != "" {
		titlePrefix = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(title) + `\s*[-–]?\s*`)
	}
	return selectorExtractors(descriptionSelectors, func(sel *goquery.Selection) (string, bool) {
		description := strings.TrimSpace(sel.Text())
		description = codePrefixRegex.ReplaceAllString(description, "")
		if titlePrefix != nil {
			description = titlePrefix.ReplaceAllString(description, "")
		}
		return description, description != ""
	})
}

func parseCredits(text string) (string, bool) {
	if groups := bracketCreditsRegex.FindStringSubmatch(text); len(groups) > 1 {
		return groups[1], true
	}
	if groups := unitCreditsRegex.FindStringSubmatch(text); len(groups) > 1 {
		return groups[1], true
	}
	return "", false
}

var creditsExtractors = append(
	selectorExtractors(creditsSelectors, func(sel *goquery.Selection) (string, bool) {
		return parseCredits(sel.Text())
	}),
	func(block *goquery.Selection) (string, bool) {
		groups := unitCreditsRegex.FindStringSubmatch(block.Text())
		if len(groups) < 2 {
			return "", false
		}
		return groups[1], true
	},
)

func extractCredits(block *goquery.Selection) float64 {
	text, ok := firstOf(block, creditsExtractors)
	if !ok {
		return catalog.DefaultCredits
	}
	credits, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return catalog.DefaultCredits
	}
	return credits
}

func extractBlock(block *goquery.Selection, pageUrl string) (catalog.Course, bool) {
	code, ok := firstOf(block, codeExtractors)
	if !ok {
		return catalog.Course{}, false
	}
	subject, _, _ := strings.Cut(code, "*")

	title, _ := firstOf(block, titleExtractors)
	description, _ := firstOf(block, descriptionExtractors(title))
	if title == "" {
		title = code
	}

	return catalog.Course{
		Subject:     subject,
		Code:        code,
		Title:       title,
		Description: description,
		Credits:     extractCredits(block),
		Url:         pageUrl,
	}, true
}

func extractBlocks(doc *goquery.Document, pageUrl string) []catalog.Course {
	for _, selector := range blockSelectors {
		var courses []catalog.Course
		seen := map[string]struct{}{}

		doc.Find(selector).Each(func(_ int, block *goquery.Selection) {
			course, ok := extractBlock(block, pageUrl)
			if !ok {
				return
			}
			if _, dup := seen[course.Code]; dup {
				return
			}
			seen[course.Code] = struct{}{}
			courses = append(courses, course)
		})

		if len(courses) > 0 {
			return courses
		}
	}
	return nil
}

// extractFromText finds bare course codes in the visible page text, it is
// only used when a page has no recognizable course blocks.
func extractFromText(doc *goquery.Document, pageUrl string) []catalog.Course {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()

	var courses []catalog.Course
	seen := map[string]struct{}{}
	for _, groups := range strictCodeRegex.FindAllStringSubmatch(body.Text(), -1) {
		code := catalog.FormatCode(groups[1], groups[2])
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		courses = append(courses, catalog.Course{
			Subject: groups[1],
			Code:    code,
			Credits: catalog.DefaultCredits,
			Url:     pageUrl,
		})
	}
	return courses
}

// ExtractCourses reads every course on a subject page in document order.
// Blocks are found with the first block selector that produces any course,
// if none do the page text is scanned for course codes instead.
func ExtractCourses(doc *goquery.Document, pageUrl string) []catalog.Course {
	courses := extractBlocks(doc, pageUrl)
	if len(courses) > 0 {
		return courses
	}
	return extractFromText(doc, pageUrl)
}

// SubjectFromUrl guesses the subject of a page from the last segment of its
// path, it returns "UNKNOWN" if the segment is not purely alphabetic.
func SubjectFromUrl(pageUrl string) string {
	groups := subjectUrlRegex.FindStringSubmatch(pageUrl)
	if len(groups) < 2 {
		return "UNKNOWN"
	}
	return strings.ToUpper(groups[1])
}

// ScrapeSubject fetches a subject page and extracts its courses.
func ScrapeSubject(ctx context.Context, fetcher Fetcher, pageUrl string) ([]catalog.Course, error) {
	body, err := fetcher.Fetch(ctx, pageUrl)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageUrl, err)
	}
	return ExtractCourses(doc, pageUrl), nil
}
