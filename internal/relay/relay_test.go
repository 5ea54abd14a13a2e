package relay

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"broadcast-mode/internal/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	s, err := NewServer(cfg, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func TestNewServer_RequiresAddr(t *testing.T) {
	_, err := NewServer(Config{}, nil)
	require.Error(t, err)
}

func TestRootRedirectsToTV(t *testing.T) {
	ts := newTestServer(t, Config{})
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/tv", resp.Header.Get("Location"))
}

func TestTVPage(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/tv?route=" + "%2Fprojects%3Fp%3Dsignal-deck")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(b)
	require.Contains(t, page, "xterm.js")
	require.Contains(t, page, `id="ticker"`)
	require.Contains(t, page, "@get('/ticker')")
	require.Contains(t, page, `data-route="/projects?p=signal-deck"`)
}

func TestStaticRelayJS(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/static/relay.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "javascript")
}

func TestBadRouteRejected(t *testing.T) {
	ts := newTestServer(t, Config{})

	for _, path := range []string{"/tv?route=%25zz", "/ws?route=%25zz"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestWSRejectsCrossOrigin(t *testing.T) {
	ts := newTestServer(t, Config{Executable: "/nonexistent"})
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSameOrigin(t *testing.T) {
	cases := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "localhost:8787", true},
		{"http://localhost:8787", "localhost:8787", true},
		{"https://LOCALHOST:8787", "localhost:8787", true},
		{"http://localhost:8787.evil.example", "localhost:8787", false},
		{"http://evil.example", "localhost:8787", false},
		{"http://localhost:9999", "localhost:8787", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		r.Host = tc.host
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		require.Equal(t, tc.want, sameOrigin(r), tc.origin)
	}
}

func TestSessionArgs(t *testing.T) {
	s := &Server{cfg: Config{Dir: "/tmp/b", CatalogPath: " work.yaml "}}
	require.Equal(t,
		[]string{"--dir", "/tmp/b", "--catalog", "work.yaml", "open", "/projects?p=x"},
		s.sessionArgs("/projects?p=x"),
	)
	require.Empty(t, (&Server{}).sessionArgs(""))
}

func TestParseResize(t *testing.T) {
	m, ok := parseResize([]byte(`{"type":"Resize","cols":100,"rows":30}`))
	require.True(t, ok)
	require.Equal(t, 100, m.Cols)
	require.Equal(t, 30, m.Rows)

	for _, bad := range []string{`{"type":"resize","cols":0,"rows":30}`, `{"type":"ping"}`, `{nope`} {
		_, ok := parseResize([]byte(bad))
		require.False(t, ok, bad)
	}
}

func TestTickerStreamPatchesTicker(t *testing.T) {
	ts := newTestServer(t, Config{TickInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/ticker", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events, sawSelector, sawTone := 0, false, false
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() && events < 2 {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: datastar-patch-elements"):
			events++
		case strings.Contains(line, "#ticker"):
			sawSelector = true
		case strings.Contains(line, `class="tone-`):
			sawTone = true
		}
	}
	require.Equal(t, 2, events)
	require.True(t, sawSelector)
	require.True(t, sawTone)
}

func TestTickerHTMLEscapes(t *testing.T) {
	out := tickerHTML(model.TickerMessage{Text: "<b>hi</b>"})
	require.Equal(t, `<span class="tone-info">&lt;b&gt;hi&lt;/b&gt;</span>`, out)
}

func TestWSPumpsPTY(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no pty on windows")
	}
	cat, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available")
	}
	ts := newTestServer(t, Config{Executable: cat})
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"resize","cols":80,"rows":24}`)))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("on air\n")))

	var got strings.Builder
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(got.String(), "on air") {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		got.Write(data)
	}
}
