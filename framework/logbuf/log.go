// Package logbuf implements the section-structured log that tests write to.
//
// A Log is a stack of named sections. Every line is written at an indent of four spaces per
// section that is open in the underlying stream. StreamLog writes section names as soon as a
// section begins; BufferedLog wraps another Log and defers a section's name until the first line
// is written inside it, so a section that never produces output never appears at all.
package logbuf

import (
	"io"
	"strings"
)

// Indent is the text added in front of a line for each open section.
const Indent = "    "

// Log is the sink that a test's output goes to.
type Log interface {
	// Begin opens a new section with the given name.
	Begin(name string)
	// Write writes one line in the current section.
	Write(line string)
	// End closes the current section.
	End()
}

type indenter struct {
	depth int
}

func (i *indenter) indented(line string) string {
	return strings.Repeat(Indent, i.depth) + line
}

func (i *indenter) push() { i.depth++ }

func (i *indenter) pop() {
	if i.depth > 0 {
		i.depth--
	}
}

// StreamLog writes every section name and line to a stream as soon as it is received.
type StreamLog struct {
	out io.Writer
	indenter
}

// NewStreamLog creates a StreamLog that writes to out.
func NewStreamLog(out io.Writer) *StreamLog {
	return &StreamLog{out: out}
}

func (s *StreamLog) Begin(name string) {
	s.Write(name)
	s.push()
}

func (s *StreamLog) Write(line string) {
	_, _ = io.WriteString(s.out, s.indented(line)+"\n")
}

func (s *StreamLog) End() { s.pop() }

// LineLog behaves like StreamLog but keeps the indented lines in memory.
type LineLog struct {
	lines []string
	indenter
}

func (l *LineLog) Begin(name string) {
	l.Write(name)
	l.push()
}

func (l *LineLog) Write(line string) {
	l.lines = append(l.lines, l.indented(line))
}

func (l *LineLog) End() { l.pop() }

// Lines returns a copy of the lines written so far.
func (l *LineLog) Lines() []string {
	return append([]string(nil), l.lines...)
}

type multiLog []Log

// MultiLog returns a Log that forwards every call to each of the given logs in order. Nil logs
// are ignored.
func MultiLog(logs ...Log) Log {
	var ret multiLog
	for _, l := range logs {
		if l != nil {
			ret = append(ret, l)
		}
	}
	if len(ret) == 1 {
		return ret[0]
	}
	return ret
}

func (m multiLog) Begin(name string) {
	for _, l := range m {
		l.Begin(name)
	}
}

func (m multiLog) Write(line string) {
	for _, l := range m {
		l.Write(line)
	}
}

func (m multiLog) End() {
	for _, l := range m {
		l.End()
	}
}
