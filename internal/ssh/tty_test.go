package ssh

import (
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// stubSession satisfies gossh.Session; only the methods the tests touch
// are expected to be called.
type stubSession struct {
	gossh.Session
}

func TestSessionTtyTracksResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewSessionTty(stubSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v, %v", ws, err)
	}

	resized := make(chan struct{}, 2)
	tty.NotifyResize(func() { resized <- struct{}{} })
	tty.NotifyResize(func() { resized <- struct{}{} })

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-resized:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("size after resize = %+v", ws)
	}
	close(winCh)

	select {
	case <-resized:
		t.Error("callback fired twice for one window change")
	case <-time.After(50 * time.Millisecond):
	}
}
