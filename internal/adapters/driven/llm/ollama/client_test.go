package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// newTestServer answers /api/generate with response and records the
// last request.
func newTestServer(t *testing.T, status int, response string, last *generateRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			if last != nil {
				require.NoError(t, json.NewDecoder(r.Body).Decode(last))
			}
			w.WriteHeader(status)
			if status == http.StatusOK {
				_ = json.NewEncoder(w).Encode(generateResponse{Response: response, Done: true})
			} else {
				_, _ = w.Write([]byte(response))
			}
		case "/api/tags":
			w.WriteHeader(status)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return New(Config{BaseURL: url, RequestsPerSecond: 1000})
}

type stubPrompts struct{ prompt string }

func (s stubPrompts) Load(string) (string, error) { return s.prompt, nil }
func (s stubPrompts) Reload()                     {}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})

	assert.Equal(t, DefaultModel, c.ModelName())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestExtract(t *testing.T) {
	var req generateRequest
	srv := newTestServer(t, http.StatusOK,
		`{"entities":[{"text":"John","label":"other_person"},{"text":"2020","label":"DATE"},{"text":"Mars","label":"GPE"}]}`,
		&req)
	c := newTestClient(srv.URL)

	spans, err := c.Extract(context.Background(), "John filed on 2020.")

	require.NoError(t, err)
	assert.Equal(t, []domain.TextSpan{
		{Start: 0, End: 4, Label: "OTHER_PERSON"},
		{Start: 14, End: 18, Label: "DATE"},
	}, spans)
	assert.Equal(t, "json", req.Format)
	assert.False(t, req.Stream)
	assert.Equal(t, DefaultModel, req.Model)
	assert.Contains(t, req.Prompt, "John filed on 2020.")
}

func TestExtract_UsesPromptStore(t *testing.T) {
	var req generateRequest
	srv := newTestServer(t, http.StatusOK, `{"entities":[]}`, &req)
	c := newTestClient(srv.URL)
	c.SetPromptStore(stubPrompts{prompt: "custom 100% prompt: %s"})

	_, err := c.Extract(context.Background(), "text")

	require.NoError(t, err)
	assert.Equal(t, "custom 100% prompt: text", req.Prompt)
}

func TestExtract_EmptyText(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")

	spans, err := c.Extract(context.Background(), "  ")

	require.NoError(t, err)
	assert.Nil(t, spans)
}

func TestExtract_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, "model not loaded", nil)

	_, err := newTestClient(srv.URL).Extract(context.Background(), "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelResponse)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestExtract_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "not json", nil)

	_, err := newTestClient(srv.URL).Extract(context.Background(), "text")

	assert.ErrorIs(t, err, domain.ErrModelResponse)
}

func TestParseEntities_BareList(t *testing.T) {
	entities, err := parseEntities(`[{"text":"a","label":"X"}]`)

	require.NoError(t, err)
	assert.Equal(t, []entity{{Text: "a", Label: "X"}}, entities)
}

func TestLocate(t *testing.T) {
	text := "Rao J. and Rao J. agreed in Café Delhi"
	entities := []entity{
		{Text: "Rao J.", Label: "JUDGE"},
		{Text: "Rao J.", Label: "JUDGE"},
		{Text: "Delhi", Label: "gpe"},
		{Text: "Rao", Label: "OTHER_PERSON"},
		{Text: "", Label: "X"},
		{Text: "absent", Label: "X"},
	}

	spans := locate(text, entities)

	assert.Equal(t, []domain.TextSpan{
		{Start: 0, End: 6, Label: "JUDGE"},
		{Start: 11, End: 17, Label: "JUDGE"},
		{Start: 33, End: 38, Label: "GPE"},
		{Start: 0, End: 3, Label: "OTHER_PERSON"},
	}, spans)
}

func TestSummarise_KeepsOrder(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`{"Issues": "Whether the appeal lies.", "Facts": "The appellant filed.", "Decision": ["Appeal", "dismissed."]}`,
		nil)

	sections, err := newTestClient(srv.URL).Summarise(context.Background(), "judgment")

	require.NoError(t, err)
	assert.Equal(t, domain.SectionMap{
		{Name: "Issues", Text: "Whether the appeal lies."},
		{Name: "Facts", Text: "The appellant filed."},
		{Name: "Decision", Text: "Appeal dismissed."},
	}, sections)
}

func TestSummarise_NotAnObject(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `["a", "b"]`, nil)

	_, err := newTestClient(srv.URL).Summarise(context.Background(), "judgment")

	assert.ErrorIs(t, err, domain.ErrModelResponse)
}

func TestSummarise_NestedSection(t *testing.T) {
	_, err := parseSections(`{"Facts": {"a": "b"}}`)

	assert.ErrorIs(t, err, domain.ErrModelResponse)
}

func TestPing(t *testing.T) {
	ok := newTestServer(t, http.StatusOK, "", nil)
	down := newTestServer(t, http.StatusServiceUnavailable, "", nil)

	assert.NoError(t, newTestClient(ok.URL).Ping(context.Background()))
	assert.ErrorIs(t, newTestClient(down.URL).Ping(context.Background()), domain.ErrModelUnavailable)
}

func TestGenerate_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Extract(context.Background(), "text")

	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestGenerate_CancelledContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"entities": []}`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Extract(ctx, "text")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_RateLimitedResponseOpensBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL)

	_, err := c.Extract(context.Background(), "text")
	require.ErrorIs(t, err, domain.ErrModelResponse)

	assert.False(t, c.limiter.Allow())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Extract(ctx, "text")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100})

	assert.True(t, r.Allow())
	r.RecordRateLimitError(0)
	assert.False(t, r.Allow())
}

func TestRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Zero(t, retryAfter(resp))

	resp.Header.Set("Retry-After", "5")
	assert.Equal(t, 5*time.Second, retryAfter(resp))

	resp.Header.Set("Retry-After", strings.Repeat("x", 3))
	assert.Zero(t, retryAfter(resp))
}
