package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPipelineCommand(t *testing.T) {
	var user string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = r.Header.Get("X-User-ID")
		require.Equal(t, "/v1/dashboard/pipeline", r.URL.Path)
		_, _ = fmt.Fprint(w, `{"counts":{"draft":2,"paid":1},"order":["draft","paid"],"total":3}`)
	}))
	defer srv.Close()

	out, err := run(t, "pipeline", "--server", srv.URL, "--user", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"draft", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"total", "3"}, strings.Fields(lines[3]))
}

func TestUsageTrackRejectsBadCount(t *testing.T) {
	_, err := run(t, "usage", "track", "0", "--server", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestQuotesStatusReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = fmt.Fprint(w, `[]`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"code":"INVALID_QUOTE_STATUS","message":"Invalid quote status"}`)
	}))
	defer srv.Close()

	_, err := run(t, "quotes", "status", "q-1", "bogus", "--server", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_QUOTE_STATUS")
}
