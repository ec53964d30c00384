package dispatcher

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("dispatcher: unknown dispatch mode")

type Mode int

const (
	// ModeSequential handles requests on the serving path behind a FIFO gate.
	ModeSequential Mode = iota
	// ModeAwaited pulls requests from a stream and awaits each handler.
	ModeAwaited
	// ModeUnawaited pulls requests from a stream and never waits for handlers.
	ModeUnawaited
)

var modeNames = map[Mode]string{
	ModeSequential: "sequential",
	ModeAwaited:    "awaited",
	ModeUnawaited:  "unawaited",
}

var modeAliases = map[string]Mode{
	"sequential":           ModeSequential,
	"classic":              ModeSequential,
	"awaited":              ModeAwaited,
	"concurrent_awaited":   ModeAwaited,
	"iterator":             ModeAwaited,
	"unawaited":            ModeUnawaited,
	"concurrent_unawaited": ModeUnawaited,
	"no_await":             ModeUnawaited,
}

func ParseMode(name string) (Mode, error) {

	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")

	mode, ok := modeAliases[key]
	if !ok {
		return ModeSequential, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}

	return mode, nil
}

func (mode Mode) String() string {
	if name, ok := modeNames[mode]; ok {
		return name
	}

	return fmt.Sprintf("Mode(%d)", int(mode))
}
