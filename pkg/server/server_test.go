package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	win := toolkit.MustNew("GtkWindow")
	require.NoError(t, win.SetAny("title", "Inspector"))
	entry := toolkit.MustNew("GtkEntry")
	require.NoError(t, entry.SetName("email"))
	require.NoError(t, win.Add(entry))

	s, err := New(win, Options{})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postEval(t *testing.T, url, code string) evalResponse {
	t.Helper()
	body, _ := json.Marshal(evalRequest{Code: code})
	resp, err := http.Post(url+"/api/v1/eval", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out evalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Server"), "treedump/"))
}

func TestDump(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/v1/dump")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `<property name="title">Inspector</property>`)
	assert.Contains(t, body, `<object class="GtkEntry" id="email">`)

	resp, body = get(t, ts.URL+"/api/v1/dump?format=json&prefix=w")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"id": "w1"`)

	resp, body = get(t, ts.URL+"/api/v1/dump?format=dot")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "digraph G")
}

func TestDump_BadFormat(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/v1/dump?format=gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "INVALID_FORMAT")
}

func TestEval(t *testing.T) {
	_, ts := newTestServer(t)

	out := postEval(t, ts.URL, `treedump.Find("email").SetAny("text", "ada@example.com")`)
	assert.Empty(t, out.Error)
	assert.NotEmpty(t, out.ID)

	_, body := get(t, ts.URL+"/api/v1/dump")
	assert.Contains(t, body, `<property name="text">ada@example.com</property>`)

	out = postEval(t, ts.URL, `fmt.Print(treedump.Root().ClassName())`)
	assert.Equal(t, "GtkWindow", out.Stdout)

	out = postEval(t, ts.URL, `nosuch()`)
	assert.NotEmpty(t, out.Error)
	assert.Contains(t, out.Stderr, "undefined")
}

func TestEval_BadRequest(t *testing.T) {
	_, ts := newTestServer(t)

	for _, body := range []string{`not json`, `{"code": ""}`, `{"script": "x"}`} {
		resp, err := http.Post(ts.URL+"/api/v1/eval", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestWatch(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() watchMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg watchMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	first := read()
	assert.Equal(t, "dump", first.Type)
	assert.Equal(t, 2, first.Widgets)
	assert.NotContains(t, first.Markup, "ada@example.com")

	postEval(t, ts.URL, `treedump.Find("email").SetAny("text", "ada@example.com")`)

	second := read()
	assert.Equal(t, "dump", second.Type)
	assert.Contains(t, second.Markup, "ada@example.com")
}

func TestSetRoot(t *testing.T) {
	s, ts := newTestServer(t)
	s.SetRoot(t.Context(), toolkit.MustNew("GtkLabel"))

	_, body := get(t, ts.URL+"/api/v1/dump")
	assert.Contains(t, body, `<object class="GtkLabel" id="widget1">`)

	s.SetRoot(t.Context(), nil)
	resp, _ := get(t, ts.URL+"/api/v1/dump")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeUnknownEnum, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
