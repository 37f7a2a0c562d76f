package ribbon

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestSetLogger(t *testing.T) {
	buf := bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	// nearly collinear vertex triggers both documented fallbacks
	_, _, err := Ribbon([]Point{{0, 0}, {10, 0}, {20, 1e-9}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.That(t, strings.Contains(buf.String(), "near-parallel offset lines"))
	test.That(t, strings.Contains(buf.String(), "degenerate fillet angle"))

	// restoring the default logger silences output again
	SetLogger(nil)
	buf.Reset()
	_, _, err = Ribbon([]Point{{0, 0}, {10, 0}, {20, 1e-9}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.T(t, buf.Len(), 0)
}
