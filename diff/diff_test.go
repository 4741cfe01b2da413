package diff

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tuikit-go/tuikit/ansi"
	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/term"
)

func TestBuildOutputPadsToWidth(t *testing.T) {
	w := New(term.Default())
	buf := buffer.FromLines([]string{"hi"})
	out := w.BuildOutput(buf, 5, 2)
	if out[0] != "hi   " {
		t.Errorf("out[0] = %q, want padded to 5 cols", out[0])
	}
	if out[1] != "     " {
		t.Errorf("out[1] = %q, want blank padded line", out[1])
	}
}

func TestBuildOutputAppliesPersistentBackground(t *testing.T) {
	w := New(term.Default())
	w.SetPersistentBackground(ansi.Named(1))
	buf := buffer.FromLines([]string{"x"})
	out := w.BuildOutput(buf, 1, 1)
	if !strings.Contains(out[0], "\x1b[") {
		t.Errorf("out[0] = %q, want background escape applied", out[0])
	}
}

func TestWriteDiffSkipsUnchangedLines(t *testing.T) {
	r, wf, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer wf.Close()

	tm := term.New(nil, wf)
	w := New(tm)

	first := []string{"a", "b"}
	if err := w.WriteDiff(first); err != nil {
		t.Fatal(err)
	}
	firstWrite := readAvailable(t, r)
	if len(firstWrite) == 0 {
		t.Fatal("expected bytes written for first frame")
	}

	second := []string{"a", "c"}
	if err := w.WriteDiff(second); err != nil {
		t.Fatal(err)
	}
	secondWrite := readAvailable(t, r)
	if strings.Contains(string(secondWrite), "a") || !strings.Contains(string(secondWrite), "c") {
		t.Errorf("expected only changed row written, got %q", secondWrite)
	}
}

func TestInvalidateForcesFullRepaint(t *testing.T) {
	r, wf, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer wf.Close()

	tm := term.New(nil, wf)
	w := New(tm)
	if err := w.WriteDiff([]string{"same"}); err != nil {
		t.Fatal(err)
	}
	readAvailable(t, r)

	w.Invalidate()
	if err := w.WriteDiff([]string{"same"}); err != nil {
		t.Fatal(err)
	}
	out := readAvailable(t, r)
	if len(out) == 0 {
		t.Error("expected repaint of unchanged line after Invalidate")
	}
}

func readAvailable(t *testing.T, r *os.File) []byte {
	t.Helper()
	if err := r.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 4096)
	n, err := r.Read(buf)
	if err != nil && n == 0 {
		return nil
	}
	return buf[:n]
}
