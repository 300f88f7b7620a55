package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/di"
)

// apiEnvelope mirrors the standard response wrapper
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestServer builds the full application through the dependency container
// and serves it over a local listener. The mirror and the event bus stay
// disabled so no AWS calls leave the process.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Environment:     "test",
		ServerAddress:   "localhost:0",
		AWSRegion:       "us-east-1",
		CacheTTLSeconds: 60,
		LogLevel:        "error",
		EnableMetrics:   true,
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)

	server := httptest.NewServer(container.Router.Setup())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, server *httptest.Server, path string, body []byte) (*http.Response, []byte) {
	t.Helper()

	resp, err := server.Client().Post(server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func getJSON(t *testing.T, server *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestJournalLifecycle(t *testing.T) {
	// Arrange
	server := newTestServer(t)

	// Act: log an improving run of moods through the public API
	for _, mood := range []int{3, 3, 4, 8, 9, 9} {
		resp, body := postJSON(t, server, "/api/v1/entries",
			[]byte(fmt.Sprintf(`{"mood_score": %d, "tags": ["daily"]}`, mood)))
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)
	}

	// Assert: the journal lists every entry
	resp, body := getJSON(t, server, "/api/v1/entries")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, body).Data, &listing))
	assert.Equal(t, 6, listing.Count)

	// Assert: the trend report sees the improvement
	resp, body = getJSON(t, server, "/api/v1/insights/trends")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trends struct {
		TotalEntries int     `json:"total_entries"`
		AvgMood      float64 `json:"avg_mood"`
		MoodTrend    string  `json:"mood_trend"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, body).Data, &trends))
	assert.Equal(t, 6, trends.TotalEntries)
	assert.InDelta(t, 6.0, trends.AvgMood, 0.001)
	assert.Equal(t, "improving", trends.MoodTrend)

	// Assert: the pattern report covers the same entries
	resp, body = getJSON(t, server, "/api/v1/insights/patterns")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var patterns struct {
		TotalEntries int `json:"total_entries"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, body).Data, &patterns))
	assert.Equal(t, 6, patterns.TotalEntries)
}

func TestExportImportAcrossInstances(t *testing.T) {
	// Arrange: populate one instance with a mixed journal
	source := newTestServer(t)

	entries := []string{
		`{"mood_score": 7, "stress_level": 3, "energy_level": 8, "sleep_hours": 7.5, "notes": "long walk", "tags": ["exercise", "Work"]}`,
		`{"mood_score": 4, "notes": "slow morning"}`,
		`{"mood_score": 9, "tags": ["rest"]}`,
	}
	for _, entry := range entries {
		resp, body := postJSON(t, source, "/api/v1/entries", []byte(entry))
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)
	}

	resp, exported := getJSON(t, source, "/api/v1/export")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	// Act: import the export into a fresh instance
	target := newTestServer(t)
	resp, body := postJSON(t, target, "/api/v1/import", exported)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var imported struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, body).Data, &imported))
	assert.Equal(t, len(entries), imported.Imported)

	// Assert: re-exporting the target reproduces the original document
	resp, reExported := getJSON(t, target, "/api/v1/export")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, string(exported), string(reExported))
}

func TestValidationFailuresSurfaceAsClientErrors(t *testing.T) {
	// Arrange
	server := newTestServer(t)

	// Act: a score outside the 1..10 scale
	resp, body := postJSON(t, server, "/api/v1/entries", []byte(`{"mood_score": 14}`))

	// Assert
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeEnvelope(t, body)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SCORE_OUT_OF_RANGE", envelope.Error.Code)

	// Act: a broken import batch leaves the journal untouched
	resp, _ = postJSON(t, server, "/api/v1/import",
		[]byte(`[{"mood_score": 5}, {"notes": "score went missing"}]`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = getJSON(t, server, "/api/v1/entries")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, body).Data, &listing))
	assert.Equal(t, 0, listing.Count)
}
