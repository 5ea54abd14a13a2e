package relay

import (
	"html/template"
	"math/rand/v2"
	"net/http"
	"time"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/ticker"

	"github.com/starfederation/datastar-go/datastar"
)

// handleTicker streams the "now playing" strip. Each connection is one
// session with its own selection.
func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x72656c6179))
	t := ticker.New(ticker.Pick(ticker.Defaults, false, rng))

	patch := func() {
		_ = sse.PatchElements(tickerHTML(t.Current()),
			datastar.WithSelector("#ticker"),
			datastar.WithMode(datastar.ElementPatchModeInner),
		)
	}
	patch()

	cycle := time.NewTicker(s.cfg.TickInterval)
	defer cycle.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-cycle.C:
			t.Advance()
			patch()
		}
	}
}

func tickerHTML(m model.TickerMessage) string {
	tone := string(m.Tone)
	if tone == "" {
		tone = string(model.ToneInfo)
	}
	return `<span class="tone-` + template.HTMLEscapeString(tone) + `">` + template.HTMLEscapeString(m.Text) + `</span>`
}
