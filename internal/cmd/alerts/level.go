package alerts

import (
	"strconv"

	"github.com/fatih/color"
)

// Level is the severity of an alert.
type Level int

// Alert levels, most severe first.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

type style struct {
	name  string
	icon  string
	attrs []color.Attribute
}

var styles = map[Level]style{
	LevelError:   {name: "error", icon: "✗", attrs: []color.Attribute{color.FgRed, color.Bold}},
	LevelWarning: {name: "warning", icon: "!", attrs: []color.Attribute{color.FgYellow}},
	LevelInfo:    {name: "info", icon: "i", attrs: []color.Attribute{color.FgCyan}},
	LevelSuccess: {name: "success", icon: "✓", attrs: []color.Attribute{color.FgGreen}},
}

// String returns the level name used in structured output.
func (l Level) String() string {
	if s, ok := styles[l]; ok {
		return s.name
	}
	return "unknown(" + strconv.Itoa(int(l)) + ")"
}

// Icon returns the symbol printed in front of the alert.
func (l Level) Icon() string {
	if s, ok := styles[l]; ok {
		return s.icon
	}
	return "?"
}

// Color returns the terminal colour of the level.
func (l Level) Color() *color.Color {
	if s, ok := styles[l]; ok {
		return color.New(s.attrs...)
	}
	return color.New(color.Reset)
}
