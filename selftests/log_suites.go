package selftests

import (
	"strings"

	"github.com/dhemodules/dheunit/framework/expect"
	"github.com/dhemodules/dheunit/framework/logbuf"
	"github.com/dhemodules/dheunit/framework/unit"
)

func streamLogSuite(add unit.AddTestFunc) {
	add("Write()", func(t *unit.T) {
		t.Run("writes the line to the stream", func(t *unit.T) {
			line := "the logged line of text"
			var out strings.Builder
			log := logbuf.NewStreamLog(&out)

			log.Write(line)

			expect.That(t, out.String(), expect.IsEqualTo(line+"\n"))
		})
		t.Run("indents the line once per open section", func(t *unit.T) {
			var out strings.Builder
			log := logbuf.NewStreamLog(&out)

			log.Begin("outer")
			log.Begin("inner")
			log.Write("line")

			expect.That(t, out.String(), expect.IsEqualTo("outer\n    inner\n        line\n"))
		})
	})

	add("End()", func(t *unit.T) {
		t.Run("restores the previous indentation", func(t *unit.T) {
			var out strings.Builder
			log := logbuf.NewStreamLog(&out)

			log.Begin("section")
			log.End()
			log.Write("line")

			expect.That(t, out.String(), expect.IsEqualTo("section\nline\n"))
		})
	})
}

func bufferedLogSuite(add unit.AddTestFunc) {
	add("Begin()", func(t *unit.T) {
		t.Run("writes nothing", func(t *unit.T) {
			lines := &logbuf.LineLog{}
			log := logbuf.NewBufferedLog(lines)

			log.Begin("outer")
			log.Begin("inner")
			log.End()
			log.End()

			expect.That(t, len(lines.Lines()), expect.IsEqualTo(0))
		})
	})

	add("Write()", func(t *unit.T) {
		t.Run("announces open sections outermost first", func(t *unit.T) {
			lines := &logbuf.LineLog{}
			log := logbuf.NewBufferedLog(lines)

			log.Begin("outer")
			log.Begin("inner")
			log.Write("line")

			expect.That(t, strings.Join(lines.Lines(), "|"), expect.IsEqualTo("outer|    inner|        line"))
		})
		t.Run("announces each section only once", func(t *unit.T) {
			lines := &logbuf.LineLog{}
			log := logbuf.NewBufferedLog(lines)

			log.Begin("section")
			log.Write("one")
			log.Write("two")

			expect.That(t, strings.Join(lines.Lines(), "|"), expect.IsEqualTo("section|    one|    two"))
		})
		t.Run("skips sections that closed without output", func(t *unit.T) {
			lines := &logbuf.LineLog{}
			log := logbuf.NewBufferedLog(lines)

			log.Begin("outer")
			log.Begin("quiet")
			log.End()
			log.Begin("loud")
			log.Write("line")
			log.End()
			log.End()
			log.Write("after")

			expect.That(t, strings.Join(lines.Lines(), "|"), expect.IsEqualTo("outer|    loud|        line|after"))
		})
	})
}
