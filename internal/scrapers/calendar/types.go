package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const DefaultBaseUrl = "https://calendar.uoguelph.ca"

const (
	report_discover        = "discover"
	report_scrape_subject  = "scrape-subject"
	report_page_not_found  = "scrape-subject.not-found"
	report_pages_total     = "pages"
	report_courses_found   = "courses.found"
	report_courses_unique  = "courses.unique"
	report_subjects_unique = "subjects.unique"
)

// Sections are the calendars that publish course descriptions, each lives
// under {base}/{section}/course-descriptions/.
var Sections = []string{
	"undergraduate-calendar",
	"guelph-humber-calendar",
	"associate-diploma",
}

// KnownSubjects are subject codes that are tried in every section whether or
// not an index page links to them.
var KnownSubjects = []string{
	// undergraduate
	"acct", "agr", "ansc", "anth", "arab", "arth", "asci", "bioc", "biol", "biom", "blck", "bot", "bus",
	"chem", "chin", "clas", "cis", "coop", "crea", "crwr", "cjpp", "crop", "cts", "cdx", "csi", "cons",
	"econ", "engg", "engl", "edrd", "envm", "envs", "eqn", "euro", "xsen", "frhd", "fin", "food", "fare",
	"fren", "geog", "germ", "grek", "hist", "hort", "htm", "hhns", "hk", "hrob", "humn", "ies", "indg",
	"ibio", "ieaf", "ips", "iss", "univ", "idev", "ital", "jls", "larc", "lat", "lacs", "lead", "ling",
	"mgmt", "mcs", "math", "micr", "mcb", "mbg", "musc", "nano", "neur", "nutr", "oneh", "oagr", "path",
	"phil", "phys", "pbio", "pols", "popm", "port", "psyc", "real", "rpd", "rurs", "sxgn", "socp", "soc",
	"soan", "span", "spmt", "stat", "sart", "thst", "tox", "vetm", "wmst", "zoo", "dasc", "clst",
	// guelph-humber
	"ahss", "badm", "css", "ecs", "just", "kin", "mdst", "scma",
	// associate diploma
	"dagr", "denm", "deqn", "dhrt", "cphh", "dtm", "cvoa", "dvt",
}

// Fetcher returns the body of the page at url.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError is returned by a Fetcher when a page could not be retrieved.
// StatusCode is 0 when the request never got a response.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a FetchError for a page that does not
// exist.
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.NotFound()
}
