package logger

import (
	"github.com/pkg/errors"
	"strings"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Level -linecomment

type Level int

const (
	LevelOff   Level = iota // OFF
	LevelFatal              // FATAL
	LevelError              // ERROR
	LevelWarn               // WARN
	LevelInfo               // INFO
	LevelDebug              // DEBUG
	LevelTrace              // TRACE
)

var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel accepts a level name in any case, ignoring surrounding space.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for l := LevelOff; l <= LevelTrace; l++ {
		if l.String() == name {
			return l, nil
		}
	}
	return LevelOff, errors.Wrapf(ErrInvalidLevel, "%q, accepted: %s", s, acceptedLevels())
}

func acceptedLevels() string {
	names := make([]string, 0, LevelTrace+1)
	for l := LevelOff; l <= LevelTrace; l++ {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

// MarshalText lets a Level show up by name in the config dump.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
