package trace

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ilog "drivelog/internal/log"
)

func TestTraceTagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := ilog.New(ilog.Config{Format: "json", Output: &buf})

	var seenID string
	tm := NewMiddleware(func(*http.Request) string { return "192.0.2.1" })
	h := ilog.Middleware(base)(tm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.True(t, strings.HasPrefix(seenID, "req_"))
	assert.Equal(t, seenID, rec.Header().Get(RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, seenID, entry[ilog.FieldRequestID])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "192.0.2.1", entry[ilog.FieldClientIP])

	m := tm.GetMetrics()
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.Equal(t, int64(1), m.FailedRequests)
}
