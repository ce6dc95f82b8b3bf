package communication

import (
	"context"
	"time"

	"reversi/game"
	"reversi/gamemaster"
)

// webView shows a session to every browser on the hub.
type webView struct {
	hub     *Hub
	session string
	pacing  time.Duration
}

// Render publishes s and then holds the session for the pacing interval so
// consecutive automated moves stay visible.
func (v *webView) Render(ctx context.Context, s game.State) error {
	v.hub.Broadcast(Frame{Type: FrameState, Session: v.session, State: &s})
	if v.pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(v.pacing)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *webView) Notice(msg string) {
	v.hub.Broadcast(Frame{Type: FrameNotice, Session: v.session, Notice: msg})
}

func (v *webView) Result(r game.Result) {
	v.hub.Broadcast(Frame{Type: FrameResult, Session: v.session, Result: &r, Message: r.Message()})
}

func (v *webView) Controls(c gamemaster.Controls) {
	v.hub.Broadcast(Frame{Type: FrameControls, Session: v.session, Controls: &c})
}
