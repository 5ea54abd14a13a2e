package docs

import "testing"

func TestTopicsAreReadable(t *testing.T) {
	t.Parallel()

	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for _, topic := range topics {
		if md, ok := Get(topic); !ok || md == "" {
			t.Fatalf("topic %q not readable", topic)
		}
	}
	for _, topic := range Studio() {
		if _, ok := Get(topic); !ok {
			t.Fatalf("studio topic %q missing", topic)
		}
	}
}

func TestGet_RejectsUnknownAndPaths(t *testing.T) {
	t.Parallel()

	for _, topic := range []string{"", "nope", "../docs", "content/about"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("expected %q to be rejected", topic)
		}
	}
	if _, ok := Get(" ABOUT "); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
}
