//go:build integration

// Package integration contains integration tests for doralens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/doralens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub serves three pull requests merged in the last two days with
// lead times of 10h, 20h and 30h. Every other collection is empty.
func fakeGitHub(t *testing.T, failCommits bool) *httptest.Server {
	t.Helper()
	now := time.Now().UTC()
	var prs []string
	for i, lead := range []int{10, 20, 30} {
		merged := now.Add(-time.Duration(12*(i+1)) * time.Hour)
		created := merged.Add(-time.Duration(lead) * time.Hour)
		prs = append(prs, fmt.Sprintf(
			`{"number":%d,"state":"closed","title":"change %d","user":{"login":"alice"},"created_at":%q,"updated_at":%q,"merged_at":%q,"closed_at":%q}`,
			i+1, i+1, created.Format(time.RFC3339), merged.Format(time.RFC3339), merged.Format(time.RFC3339), merged.Format(time.RFC3339)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, "[%s]", strings.Join(prs, ","))
	})
	mux.HandleFunc("/repos/acme/widgets/commits", func(w http.ResponseWriter, _ *http.Request) {
		if failCommits {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
		_, _ = fmt.Fprint(w, "[]")
	})
	for _, path := range []string{"issues", "deployments", "contributors"} {
		mux.HandleFunc("/repos/acme/widgets/"+path, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "[]")
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// runDoralens runs the binary in an empty directory so no config file is picked up.
func runDoralens(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command(getDoralensBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir, "DORALENS_TOKEN=integration")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err = cmd.Run()
	return out.String(), errOut.String(), err
}

func commonArgs(apiURL string) []string {
	return []string{"--owner", "acme", "--repo", "widgets", "--api-url", apiURL, "--hydrate", "none", "--days", "7", "--color", "no"}
}

// TestSummaryVerification runs doralens summary against a fake API and verifies the scorecard.
func TestSummaryVerification(t *testing.T) {
	server := fakeGitHub(t, false)

	stdout, stderr, err := runDoralens(t, append([]string{"summary", "-o", "json"}, commonArgs(server.URL)...)...)
	require.NoError(t, err, stderr)

	var result schema.SummaryResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "acme/widgets", result.Repo.String())
	assert.InDelta(t, 20.0, result.Metrics.LeadTime, 1e-6)
	assert.InDelta(t, 3.0, result.Metrics.DeploymentFrequency, 1e-6, "three merges in one week")
	assert.InDelta(t, 0.0, result.Metrics.TimeToRestore, 1e-6)
}

// TestCurrentVerification checks the sole contributor matches the aggregate.
func TestCurrentVerification(t *testing.T) {
	server := fakeGitHub(t, false)

	stdout, stderr, err := runDoralens(t, append([]string{"current", "-o", "json"}, commonArgs(server.URL)...)...)
	require.NoError(t, err, stderr)

	var result schema.CurrentResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Contributors, 1)
	assert.Equal(t, "alice", result.Contributors[0].Name)
	assert.InDelta(t, result.Aggregate.LeadTime, result.Contributors[0].LeadTime, 1e-6)
}

// TestFetchFailureExitsNonZero checks an upstream failure is fatal for the CLI.
func TestFetchFailureExitsNonZero(t *testing.T) {
	server := fakeGitHub(t, true)

	stdout, stderr, err := runDoralens(t, append([]string{"summary", "-o", "json"}, commonArgs(server.URL)...)...)
	require.Error(t, err)
	assert.Empty(t, stdout, "no partial payload on failure")
	assert.Contains(t, stderr, "Cannot compute summary")
}

// TestMetricsVerification checks the definitions need no network access.
func TestMetricsVerification(t *testing.T) {
	stdout, stderr, err := runDoralens(t, "metrics", "-o", "json")
	require.NoError(t, err, stderr)

	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal([]byte(stdout), &model))
	assert.Len(t, model.Metrics, len(schema.AllMetricKeys))
}
