// Package term owns the terminal file descriptor: raw-mode lifecycle,
// alternate-screen and cursor visibility toggles, buffered frame writes,
// size queries, and non-blocking reads of key bytes. No other package in
// this module writes to the terminal directly.
package term

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Size is the terminal's current dimensions in character cells.
type Size struct {
	Cols int
	Rows int
}

// Terminal drives a single terminal file descriptor (normally os.Stdout
// for writes, os.Stdin for reads).
type Terminal struct {
	in  *os.File
	out *os.File

	mu          sync.Mutex
	rawEnabled  bool
	origTermios *unix.Termios

	inFrame  bool
	frameBuf []byte

	profileOnce sync.Once
	profile     termenv.Profile
}

// New creates a Terminal bound to the given input and output files.
func New(in, out *os.File) *Terminal {
	return &Terminal{
		in:       in,
		out:      out,
		frameBuf: make([]byte, 0, 16*1024),
	}
}

// Default creates a Terminal bound to os.Stdin/os.Stdout.
func Default() *Terminal {
	return New(os.Stdin, os.Stdout)
}

// Size queries the terminal's current dimensions. It tries the
// TIOCGWINSZ ioctl on the output fd, then falls back to the COLUMNS and
// LINES environment variables, then to (80, 24). A queried size of
// (0, 0) is treated as (80, 24).
func (t *Terminal) Size() Size {
	if s, ok := sizeFromIoctl(t.out.Fd()); ok {
		return s
	}
	return sizeFromEnv()
}

func sizeFromIoctl(fd uintptr) (Size, bool) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, false
	}
	if ws.Col == 0 && ws.Row == 0 {
		return Size{Cols: 80, Rows: 24}, true
	}
	if ws.Col == 0 || ws.Row == 0 {
		return Size{}, false
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, true
}

func sizeFromEnv() Size {
	cols := envInt("COLUMNS", 80)
	rows := envInt("LINES", 24)
	if cols <= 0 || rows <= 0 {
		return Size{Cols: 80, Rows: 24}
	}
	return Size{Cols: cols, Rows: rows}
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return fallback
	}
	return n
}

// ColorProfile probes (once) what color model the output terminal
// supports, honoring NO_COLOR/CLICOLOR and the TERM/COLORTERM
// conventions. The module's own renderer does not consult it: SGR
// sequences are emitted whatever the profile.
func (t *Terminal) ColorProfile() termenv.Profile {
	t.profileOnce.Do(func() {
		t.profile = termenv.NewOutput(t.out).EnvColorProfile()
	})
	return t.profile
}

// ColorEnabled reports whether the output terminal renders color at
// all.
func (t *Terminal) ColorEnabled() bool {
	return t.ColorProfile() != termenv.Ascii
}

// EnableRaw puts the terminal into raw mode: no echo, no canonical
// buffering, signal generation and input/output processing disabled,
// non-blocking reads (min=0, time=0). Idempotent: calling it twice
// without an intervening DisableRaw is a no-op.
func (t *Terminal) EnableRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rawEnabled {
		return nil
	}
	orig, err := unix.IoctlGetTermios(int(t.in.Fd()), tcGets)
	if err != nil {
		return errors.Wrap(err, "term: get termios")
	}
	raw := *orig
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.INPCK
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(t.in.Fd()), tcSets, &raw); err != nil {
		return errors.Wrap(err, "term: set termios")
	}
	t.origTermios = orig
	t.rawEnabled = true
	return nil
}

// DisableRaw restores the termios settings captured by EnableRaw.
// Idempotent, and safe to call even if EnableRaw was never called or
// failed.
func (t *Terminal) DisableRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rawEnabled || t.origTermios == nil {
		t.rawEnabled = false
		return nil
	}
	err := unix.IoctlSetTermios(int(t.in.Fd()), tcSets, t.origTermios)
	t.rawEnabled = false
	if err != nil {
		return errors.Wrap(err, "term: restore termios")
	}
	return nil
}

// Close guarantees raw mode is disabled; it never returns an error so it
// can be deferred unconditionally.
func (t *Terminal) Close() {
	_ = t.DisableRaw()
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *Terminal) EnterAltScreen() error { return t.writeNow(altScreenEnter) }

// ExitAltScreen restores the primary screen buffer.
func (t *Terminal) ExitAltScreen() error { return t.writeNow(altScreenExit) }

// HideCursor hides the terminal cursor.
func (t *Terminal) HideCursor() error { return t.writeNow(cursorHide) }

// ShowCursor shows the terminal cursor.
func (t *Terminal) ShowCursor() error { return t.writeNow(cursorShow) }

const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
	cursorHide     = "\x1b[?25l"
	cursorShow     = "\x1b[?25h"
)

func (t *Terminal) writeNow(s string) error {
	_, err := writeAll(t.out, []byte(s))
	return errors.Wrap(err, "term: write")
}

// BeginFrame opens a buffered write region. Calls to Write between
// BeginFrame and EndFrame append to an internal buffer instead of
// issuing an OS write.
func (t *Terminal) BeginFrame() {
	t.mu.Lock()
	t.inFrame = true
	t.frameBuf = t.frameBuf[:0]
	t.mu.Unlock()
}

// Write appends bytes to the current frame buffer if a frame is open,
// otherwise performs an immediate OS write.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	inFrame := t.inFrame
	if inFrame {
		t.frameBuf = append(t.frameBuf, p...)
		t.mu.Unlock()
		return len(p), nil
	}
	t.mu.Unlock()
	return writeAll(t.out, p)
}

// EndFrame performs a single OS write of everything buffered since
// BeginFrame, looping until all bytes are written, then closes the
// frame region.
func (t *Terminal) EndFrame() error {
	t.mu.Lock()
	buf := t.frameBuf
	t.inFrame = false
	t.mu.Unlock()
	if len(buf) == 0 {
		return nil
	}
	_, err := writeAll(t.out, buf)
	return errors.Wrap(err, "term: flush frame")
}

func writeAll(f *os.File, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := f.Write(p[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

const maxKeyBytes = 8

// ReadKeyBytes performs a non-blocking read of up to maxKeyBytes bytes.
// If the first byte read is ESC (0x1B), it attempts one bounded
// follow-up read to capture the remainder of a potential escape
// sequence without blocking. Returns 0 bytes (no error) if nothing is
// currently available.
func (t *Terminal) ReadKeyBytes() ([]byte, error) {
	buf := make([]byte, maxKeyBytes)
	// A raw-mode tty (VMIN=0, VTIME=0) returns at once with EOF; a
	// pollable file such as a pipe needs a short deadline to do the same.
	_ = t.in.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, err := t.in.Read(buf)
	if err != nil {
		if isWouldBlock(err) || errors.Is(err, io.EOF) || errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "term: read")
	}
	if n == 0 {
		return nil, nil
	}
	if buf[0] == 0x1b && n < maxKeyBytes {
		more := make([]byte, maxKeyBytes-n)
		extra, err2 := t.in.Read(more)
		if err2 == nil && extra > 0 {
			n += copy(buf[n:], more[:extra])
		}
	}
	return buf[:n], nil
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
