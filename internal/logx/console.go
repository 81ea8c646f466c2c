package logx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type UseColor int

const (
	ColorAuto UseColor = iota
	ColorOn
	ColorOff
)

type logLevels [LevelCount]string

var levelstrings = [2]logLevels{
	// uncolored
	{
		DEBUG:    "   DEBUG",
		INFO:     "    INFO",
		NOTICE:   "  NOTICE",
		WARN:     " WARNING",
		ERROR:    "   ERROR",
		CRITICAL: "CRITICAL",
	},
	// colored
	{
		DEBUG:    "\033[37m   DEBUG\033[0m",
		INFO:     "\033[34m    INFO\033[0m",
		NOTICE:   "\033[32m  NOTICE\033[0m",
		WARN:     "\033[33m WARNING\033[0m",
		ERROR:    "\033[31m   ERROR\033[0m",
		CRITICAL: "\033[35mCRITICAL\033[0m",
	},
}

var formatstrings = [2]string{
	// uncolored
	"%s %s [%s] ",
	// colored
	"%s %s [\033[36m%s\033[0m] ",
}

var _ LoggerX = (*ConsoleLogger)(nil)

// ConsoleLogger writes one line per message, prefixed with the time, level
// and section.
type ConsoleLogger struct {
	l   sync.Mutex
	w   *bufio.Writer
	t   int // index into levelstrings and formatstrings
	m   Level
	now func() time.Time
}

// NewConsoleLogger logs to f, in colour if c allows it and f is a terminal.
func NewConsoleLogger(f *os.File, logLevel Level, c UseColor) *ConsoleLogger {
	fd := f.Fd()
	if c == ColorOn || (c == ColorAuto && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))) {
		l := NewWriterLogger(colorable.NewColorable(f), logLevel)
		l.t = 1
		return l
	}
	return NewWriterLogger(f, logLevel)
}

// NewWriterLogger logs uncoloured to w.
func NewWriterLogger(w io.Writer, logLevel Level) *ConsoleLogger {
	return &ConsoleLogger{w: bufio.NewWriter(w), m: logLevel, now: time.Now}
}

func (l *ConsoleLogger) Level() Level {
	return l.m
}

func (l *ConsoleLogger) SetLevel(lvl Level) {
	l.l.Lock()
	l.m = lvl
	l.l.Unlock()
}

func (l *ConsoleLogger) prepareWrite(section string, lvl Level) {
	fmt.Fprintf(l.w, formatstrings[l.t], l.now().Format("15:04:05"), levelstrings[l.t][lvl], section)
}

func (l *ConsoleLogger) finish(s string) {
	l.w.WriteString(s)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		l.w.WriteByte('\n')
	}
	l.w.Flush()
}

func (l *ConsoleLogger) LogPrintX(section string, lvl Level, v ...interface{}) {
	if l.m > lvl {
		return
	}
	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl)
	l.finish(fmt.Sprint(v...))
}

func (l *ConsoleLogger) LogPrintlnX(section string, lvl Level, v ...interface{}) {
	if l.m > lvl {
		return
	}
	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl)
	l.finish(fmt.Sprintln(v...))
}

func (l *ConsoleLogger) LogPrintfX(section string, lvl Level, fmts string, v ...interface{}) {
	if l.m > lvl {
		return
	}
	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl)
	l.finish(fmt.Sprintf(fmts, v...))
}
