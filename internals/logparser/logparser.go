// Package logparser parses log4j style lines and classifies process output.
package logparser

import (
	"fmt"
	"regexp"
	"time"
)

const timeFormat = "15:04:05"

var lineRegex = regexp.MustCompile(`^\[(\d+:\d+:\d+)\] \[(.+?)\/(\w+)\](?: \[(.+?)\])?: (.*)$`)

// LogLine is a parsed log line
type LogLine struct {
	Time    time.Time
	Thread  string
	Level   string
	Tag     string
	Message string
	Garbage bool
}

func (l LogLine) String() string {
	if l.Garbage {
		return l.Message
	}
	if l.Tag == "" {
		return fmt.Sprintf("[%s] [%s/%s]: %s", l.Time.Format(timeFormat), l.Thread, l.Level, l.Message)
	}
	return fmt.Sprintf(
		"[%s] [%s/%s] [%s]: %s",
		l.Time.Format(timeFormat),
		l.Thread,
		l.Level,
		l.Tag,
		l.Message,
	)
}

// ParseLine parses a string into a `LogLine`
func ParseLine(input string) *LogLine {
	found := lineRegex.FindStringSubmatch(input)
	if len(found) == 0 {
		return &LogLine{Garbage: true, Message: input}
	}
	parsedTime, err := time.Parse(timeFormat, found[1])
	if err != nil {
		return &LogLine{Garbage: true, Message: input}
	}

	return &LogLine{
		Time:    parsedTime,
		Thread:  found[2],
		Level:   found[3],
		Tag:     found[4],
		Message: found[5],
	}
}
