package calendar

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/catalog"
	"catalog-backend/internal/components/assert"
	"catalog-backend/internal/components/chrono"
	"catalog-backend/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultDelay = 300 * time.Millisecond

var tracer = otel.Tracer("catalog-backend/internal/scrapers/calendar")

type ScraperOptions struct {
	Fetcher Fetcher
	// Sink receives the deduplicated courses, a nil Sink skips persistence.
	Sink    catalog.Sink
	BaseUrl string
	// Delay is the pause between two subject page fetches.
	Delay time.Duration
	Clock chrono.API
	Tel   telemetry.API
}

type Summary struct {
	Pages         int
	NotFound      int
	Failed        int
	Found         int
	Unique        int
	Written       int
	FailedBatches int
	Subjects      []catalog.SubjectCount
	// Elapsed is the wall time of the run as measured by the clock.
	Elapsed time.Duration
}

// Scraper runs a full ingestion: discovery, one fetch per subject page,
// deduplication and batched persistence. It is best effort, a page or a
// batch that fails is reported and skipped.
type Scraper struct {
	fetcher Fetcher
	sink    catalog.Sink
	baseUrl string
	delay   time.Duration
	clock   chrono.API
	tel     telemetry.API
}

func NewScraper(opts ScraperOptions) Scraper {
	assert.NotNil(opts.Fetcher)
	assert.NotNil(opts.Tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	assert.NotEmptyStr(baseUrl)
	clock := opts.Clock
	if clock == nil {
		clock = chrono.NewStandardImpl()
	}

	return Scraper{
		fetcher: opts.Fetcher,
		sink:    opts.Sink,
		baseUrl: baseUrl,
		delay:   opts.Delay,
		clock:   clock,
		tel:     opts.Tel,
	}
}

type pageResult int

const (
	pageOk pageResult = iota
	pageNotFound
	pageFailed
)

func (s Scraper) scrapePage(ctx context.Context, tel telemetry.API, agg *catalog.Aggregator, pageUrl string) (pageResult, int) {
	ctx, span := tracer.Start(ctx, "ScrapeSubject")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	label := SubjectFromUrl(pageUrl)

	courses, err := ScrapeSubject(ctx, s.fetcher, pageUrl)
	if IsNotFound(err) {
		span.SetAttributes(attribute.Bool("not_found", true))
		tel.ReportWarning(report_page_not_found, label, pageUrl)
		return pageNotFound, 0
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		tel.ReportWarning(report_scrape_subject, err, label)
		return pageFailed, 0
	}

	added := 0
	for _, c := range courses {
		if agg.Add(c) {
			added++
		}
	}
	span.SetAttributes(attribute.Int("courses", len(courses)))

	if len(courses) == 0 {
		tel.ReportDebug("no courses found", label, pageUrl)
	} else {
		tel.ReportDebug(
			"scraped subject",
			label,
			fmt.Sprintf("%d courses", len(courses)),
			fmt.Sprintf("%d new", added),
			fmt.Sprintf("%d unique", agg.Len()),
		)
	}
	return pageOk, len(courses)
}

func (s Scraper) Run(ctx context.Context) (summary Summary, err error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	tel := telemetry.NewScopedAPI("calendar", s.tel)
	start := s.clock.Now()
	defer func() {
		summary.Elapsed = s.clock.Now().Sub(start)
	}()

	pages := Discover(ctx, s.fetcher, s.baseUrl, s.tel)
	tel.ReportCount(report_pages_total, int64(len(pages)))

	agg := catalog.NewAggregator()
	for i, pageUrl := range pages {
		if i > 0 {
			err = s.clock.Sleep(ctx, s.delay)
			if err != nil {
				span.RecordError(err)
				return summary, err
			}
		}

		tel.ReportDebug("scraping", fmt.Sprintf("%d/%d", i+1, len(pages)), pageUrl)
		summary.Pages++

		result, found := s.scrapePage(ctx, tel, agg, pageUrl)
		switch result {
		case pageNotFound:
			summary.NotFound++
		case pageFailed:
			summary.Failed++
		}
		summary.Found += found
	}

	courses := agg.Courses()
	summary.Unique = len(courses)
	summary.Subjects = agg.SubjectCounts()

	tel.ReportCount(report_courses_found, int64(summary.Found))
	tel.ReportCount(report_courses_unique, int64(summary.Unique))
	tel.ReportCount(report_subjects_unique, int64(len(summary.Subjects)))
	span.SetAttributes(
		attribute.Int("pages", summary.Pages),
		attribute.Int("courses", summary.Unique),
	)

	if s.sink == nil {
		tel.ReportDebug("dry run, not persisting courses", summary.Unique)
		return summary, nil
	}

	result := catalog.NewWriter(s.sink, s.tel).Write(ctx, courses)
	summary.Written = result.Written
	summary.FailedBatches = result.FailedBatches
	return summary, nil
}
