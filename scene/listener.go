package scene

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	return [...]string{"info", "warning", "error"}[s]
}

type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
}

// Listener records diagnostics of one import session and echoes them to a log.
type Listener struct {
	Session string

	logger *log.Logger
	diags  []Diagnostic
}

// NewListener makes a listener writing to w, or to the standard logger output
// when w is nil.
func NewListener(w io.Writer) *Listener {
	if w == nil {
		w = log.Writer()
	}
	id := uuid.New().String()
	return &Listener{
		Session: id,
		logger:  log.New(w, "["+id[:8]+"] ", log.LstdFlags),
	}
}

func (l *Listener) add(s Severity, format string, args ...interface{}) {
	d := Diagnostic{Severity: s, Message: fmt.Sprintf(format, args...)}
	l.diags = append(l.diags, d)
	l.logger.Printf("%s: %s", s, d.Message)
}

func (l *Listener) Info(format string, args ...interface{}) {
	l.add(SeverityInfo, format, args...)
}

func (l *Listener) Warning(format string, args ...interface{}) {
	l.add(SeverityWarning, format, args...)
}

func (l *Listener) Error(format string, args ...interface{}) {
	l.add(SeverityError, format, args...)
}

// Clear forgets recorded diagnostics.
func (l *Listener) Clear() {
	l.diags = nil
}

func (l *Listener) Diagnostics() []Diagnostic {
	return l.diags
}

// Count returns the number of diagnostics of severity s.
func (l *Listener) Count(s Severity) int {
	n := 0
	for _, d := range l.diags {
		if d.Severity == s {
			n++
		}
	}
	return n
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
