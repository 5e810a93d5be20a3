package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			fmt.Fprint(w, "<html><body>hello</body></html>")
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{RequestsPerSecond: 100}, telemetry.NewRecorder())
	ctx := context.Background()

	body, err := client.Fetch(ctx, server.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, "<html><body>hello</body></html>", body)

	_, err = client.Fetch(ctx, server.URL+"/missing")
	require.True(t, IsNotFound(err))
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	require.Equal(t, server.URL+"/missing", fetchErr.URL)

	_, err = client.Fetch(ctx, server.URL+"/broken")
	require.Error(t, err)
	require.False(t, IsNotFound(err))
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestClientFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientOptions{}, telemetry.NewRecorder())
	_, err := client.Fetch(context.Background(), url)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Zero(t, fetchErr.StatusCode)
	require.NotNil(t, fetchErr.Unwrap())
	require.False(t, IsNotFound(err))
}
