package logx

import (
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARN
	ERROR
	CRITICAL
	LevelCount
)

var levelNames = [LevelCount]string{
	DEBUG:    "debug",
	INFO:     "info",
	NOTICE:   "notice",
	WARN:     "warn",
	ERROR:    "error",
	CRITICAL: "critical",
}

func (l Level) String() string {
	if l < 0 || l >= LevelCount {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel accepts level names case-insensitively, plus "warning".
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WARN, true
	}
	for i, n := range levelNames {
		if n == s {
			return Level(i), true
		}
	}
	return 0, false
}

type LoggerX interface {
	LogPrintX(section string, lvl Level, v ...interface{})
	LogPrintlnX(section string, lvl Level, v ...interface{})
	LogPrintfX(section string, lvl Level, fmt string, v ...interface{})
}

type Logger interface {
	LogPrint(lvl Level, v ...interface{})
	LogPrintln(lvl Level, v ...interface{})
	LogPrintf(lvl Level, fmt string, v ...interface{})
}

type LogToX struct {
	section string
	logx    LoggerX
}

func (l LogToX) LogPrint(lvl Level, v ...interface{})   { l.logx.LogPrintX(l.section, lvl, v...) }
func (l LogToX) LogPrintln(lvl Level, v ...interface{}) { l.logx.LogPrintlnX(l.section, lvl, v...) }
func (l LogToX) LogPrintf(lvl Level, fmt string, v ...interface{}) {
	l.logx.LogPrintfX(l.section, lvl, fmt, v...)
}
func NewLogToX(logx LoggerX, section string) LogToX { return LogToX{section: section, logx: logx} }

var _ Logger = LogToX{}

// NopLogger drops everything.
type NopLogger struct{}

func (NopLogger) LogPrint(Level, ...interface{})          {}
func (NopLogger) LogPrintln(Level, ...interface{})        {}
func (NopLogger) LogPrintf(Level, string, ...interface{}) {}

var _ Logger = NopLogger{}
