package calendar

import (
	"context"
	"net/http"
	"sync"
)

// fakeFetcher serves pages from memory, unknown urls are 404s.
type fakeFetcher struct {
	mutex   sync.Mutex
	pages   map[string]string
	failing map[string]bool
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.fetched = append(f.fetched, url)

	if f.failing[url] {
		return "", &FetchError{URL: url, StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}
	}
	page, ok := f.pages[url]
	if !ok {
		return "", &FetchError{URL: url, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return page, nil
}
