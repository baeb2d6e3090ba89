package gateway

import (
	"sync"
	"testing"
	"time"
)

type notice struct {
	room    string
	exclude string
	text    string
}

type noticeRecorder struct {
	mu  sync.Mutex
	got []notice
	ch  chan notice
}

func newNoticeRecorder() *noticeRecorder {
	return &noticeRecorder{ch: make(chan notice, 16)}
}

func (r *noticeRecorder) fn(room, exclude, text string) {
	n := notice{room: room, exclude: exclude, text: text}
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
	r.ch <- n
}

func (r *noticeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func (r *noticeRecorder) wait(t *testing.T, timeout time.Duration) notice {
	t.Helper()
	select {
	case n := <-r.ch:
		return n
	case <-time.After(timeout):
		t.Fatal("timed out waiting for a typing notice")
		return notice{}
	}
}

func TestMarkTypingIdempotent(t *testing.T) {
	tr := NewTypingTracker(time.Second)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	tr.Mark("alice", "Lobby", "c1", rec.fn)

	if got := rec.count(); got != 1 {
		t.Errorf("double Mark must broadcast once, got %d", got)
	}
	if active := tr.Active(); len(active) != 1 || active[0] != "alice" {
		t.Errorf("active = %v", active)
	}
}

func TestMarkTypingNotices(t *testing.T) {
	tr := NewTypingTracker(time.Second)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	first := rec.wait(t, time.Second)
	if first.text != "alice est en train d'écrire..." {
		t.Errorf("single-typer notice = %q", first.text)
	}
	if first.exclude != "c1" {
		t.Errorf("actor must be excluded, exclude = %q", first.exclude)
	}

	tr.Mark("bob", "Lobby", "c2", rec.fn)
	second := rec.wait(t, time.Second)
	if second.text != "Plusieurs personnes sont en train d'écrire..." {
		t.Errorf("multi-typer notice = %q", second.text)
	}
}

func TestTypingExpiryClearsLastOne(t *testing.T) {
	tr := NewTypingTracker(20 * time.Millisecond)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	rec.wait(t, time.Second) // the immediate single-typer notice

	clear := rec.wait(t, time.Second)
	if clear.text != "" {
		t.Errorf("expiry of the last typer should broadcast a clear, got %q", clear.text)
	}
	if clear.exclude != "" {
		t.Errorf("clear notice excludes nobody, exclude = %q", clear.exclude)
	}
	if active := tr.Active(); len(active) != 0 {
		t.Errorf("typing set not empty after expiry: %v", active)
	}
}

func TestTypingExpiryStaysSilentWhileOthersRemain(t *testing.T) {
	tr := NewTypingTracker(20 * time.Millisecond)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	rec.wait(t, time.Second)
	tr.Mark("bob", "Lobby", "c2", rec.fn)
	rec.wait(t, time.Second)

	// bob's Mark came ~instantly after alice's; alice expires first while bob
	// is still composing, which must not broadcast anything. bob's own expiry
	// then clears the indicator.
	clear := rec.wait(t, time.Second)
	if clear.text != "" {
		t.Fatalf("expected only the final clear broadcast, got %q", clear.text)
	}
	if got := rec.count(); got != 3 {
		t.Errorf("expected 3 notices total (two marks, one clear), got %d", got)
	}
}

func TestClearOnSendReannouncesLastTyper(t *testing.T) {
	tr := NewTypingTracker(time.Minute)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	rec.wait(t, time.Second)
	tr.Mark("carol", "Lobby", "c3", rec.fn)
	rec.wait(t, time.Second)

	tr.ClearOnSend("alice", "Lobby", "c1", rec.fn)
	n := rec.wait(t, time.Second)
	if n.text != "carol est en train d'écrire..." {
		t.Errorf("remaining typer should be re-announced, got %q", n.text)
	}
	if n.exclude != "c1" {
		t.Errorf("sender must be excluded, exclude = %q", n.exclude)
	}
	if active := tr.Active(); len(active) != 1 || active[0] != "carol" {
		t.Errorf("active = %v", active)
	}
}

func TestClearOnSendLastTyperClears(t *testing.T) {
	tr := NewTypingTracker(time.Minute)
	rec := newNoticeRecorder()

	tr.Mark("alice", "Lobby", "c1", rec.fn)
	rec.wait(t, time.Second)

	tr.ClearOnSend("alice", "Lobby", "c1", rec.fn)
	n := rec.wait(t, time.Second)
	if n.text != "" {
		t.Errorf("clearing the only typer should broadcast empty, got %q", n.text)
	}

	// Expiry must not fire later: the timer was consumed by ClearOnSend.
	time.Sleep(30 * time.Millisecond)
	if got := rec.count(); got != 2 {
		t.Errorf("unexpected extra broadcasts, got %d", got)
	}
}

func TestClearOnSendUnknownUserIsSilent(t *testing.T) {
	tr := NewTypingTracker(time.Minute)
	rec := newNoticeRecorder()

	tr.ClearOnSend("ghost", "Lobby", "c9", rec.fn)
	if got := rec.count(); got != 0 {
		t.Errorf("ClearOnSend for a non-typer must not broadcast, got %d", got)
	}
}
