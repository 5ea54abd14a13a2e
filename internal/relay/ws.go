package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"broadcast-mode/internal/catalog"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type wsMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin allows requests without an Origin header (non-browser clients).
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, strings.TrimSpace(r.Host))
}

// routeParam returns the normalized ?route= deep link, or "" when absent.
func routeParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("route"))
	if raw == "" {
		return "", nil
	}
	loc, err := catalog.ParseLocation(raw)
	if err != nil {
		return "", errors.New("invalid route: " + raw)
	}
	return loc.String(), nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	route, err := routeParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.log.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ptmx, cmd, cleanup, err := s.startPTYSession(route)
	if err != nil {
		s.log.Warn("start pty session", zap.Error(err))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
		return
	}
	defer cleanup()
	s.log.Debug("pty session started", zap.Int("pid", cmd.Process.Pid), zap.String("route", route))

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- pumpPTYToWS(ctx, ptmx, conn)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- pumpWSToPTY(ctx, conn, ptmx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.log.Debug("pty session ended", zap.Error(err))
		}
	}
	cancel()

	// Unblock both pumps: the child's exit closes the pty side and closing
	// the socket ends ReadMessage.
	_ = cmd.Process.Kill()
	_ = conn.Close()

	wg.Wait()
}

// sessionArgs builds the child's argv; no subcommand means the interactive TUI.
func (s *Server) sessionArgs(route string) []string {
	args := []string{}
	if dir := strings.TrimSpace(s.cfg.Dir); dir != "" {
		args = append(args, "--dir", dir)
	}
	if path := strings.TrimSpace(s.cfg.CatalogPath); path != "" {
		args = append(args, "--catalog", path)
	}
	if route != "" {
		args = append(args, "open", route)
	}
	return args
}

func (s *Server) startPTYSession(route string) (*os.File, *exec.Cmd, func(), error) {
	exe := strings.TrimSpace(s.cfg.Executable)
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, nil, nil, err
		}
	}

	cmd := exec.Command(exe, s.sessionArgs(route)...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	}

	return ptmx, cmd, cleanup, nil
}

func pumpPTYToWS(ctx context.Context, ptmx *os.File, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func pumpWSToPTY(ctx context.Context, conn *websocket.Conn, ptmx *os.File) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		// Control frames are JSON text; keystrokes are plain text or binary.
		if mt == websocket.TextMessage && len(data) > 0 && data[0] == '{' {
			if m, ok := parseResize(data); ok {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(m.Cols), Rows: uint16(m.Rows)})
			}
			continue
		}

		if len(data) == 0 {
			continue
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
}

func parseResize(data []byte) (wsMsg, bool) {
	var m wsMsg
	if err := json.Unmarshal(data, &m); err != nil {
		return wsMsg{}, false
	}
	if strings.TrimSpace(strings.ToLower(m.Type)) != "resize" {
		return wsMsg{}, false
	}
	if m.Cols <= 0 || m.Rows <= 0 || m.Cols > 1000 || m.Rows > 1000 {
		return wsMsg{}, false
	}
	return m, true
}
