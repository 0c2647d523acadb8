package model

import (
	"errors"
	"fmt"
)

// Mode selects how the conversation is turned into a backend request.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeChat     Mode = "chat"
	ModeCode     Mode = "code"
)

var ErrUnknownMode = errors.New("unknown mode")

// Modes lists the modes in selector order.
func Modes() []Mode {
	return []Mode{ModeGenerate, ModeChat, ModeCode}
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGenerate, ModeChat, ModeCode:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SingleShot reports whether the mode sends one combined prompt instead of a message list.
func (m Mode) SingleShot() bool {
	return m == ModeGenerate || m == ModeCode
}

// ErrorTitle is the heading used when a request in this mode fails.
func (m Mode) ErrorTitle() string {
	if m == ModeChat {
		return "Chat Error"
	}
	return "Generation Error"
}

func (m Mode) String() string {
	return string(m)
}
