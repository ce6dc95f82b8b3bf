package communication

import (
	"reversi/game"
	"reversi/gamemaster"
)

// Frame types sent to browsers.
const (
	FrameState    = "state"
	FrameNotice   = "notice"
	FrameResult   = "result"
	FrameControls = "controls"
)

// Command types received from browsers.
const (
	CommandStart  = "start"
	CommandSelect = "select"
	CommandEnd    = "end"
	CommandUndo   = "undo"
)

// Frame is one server to client message. Only the field matching Type is set.
type Frame struct {
	Type     string               `json:"type"`
	Session  string               `json:"session,omitempty"`
	State    *game.State          `json:"state,omitempty"`
	Notice   string               `json:"notice,omitempty"`
	Result   *game.Result         `json:"result,omitempty"`
	Message  string               `json:"message,omitempty"`
	Controls *gamemaster.Controls `json:"controls,omitempty"`
}

// Command is one client to server message.
type Command struct {
	Type   string `json:"type"`
	First  string `json:"first,omitempty"`
	Second string `json:"second,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}
