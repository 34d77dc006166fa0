package logbuf

// section is one open section of a BufferedLog.
type section struct {
	name      string
	announced bool
}

// BufferedLog defers each section's name until something is written inside the section.
//
// Begin writes nothing. Write first announces, outermost first, every open section that has not
// been announced yet by calling Begin on the underlying log, then writes the line. End closes
// the section in the underlying log only if it was announced. The underlying log therefore
// sees exactly one Begin/End pair per section that produced output, and its indentation always
// equals the number of open, announced sections.
type BufferedLog struct {
	log      Log
	sections []section
}

// NewBufferedLog creates a BufferedLog that writes to log.
func NewBufferedLog(log Log) *BufferedLog {
	return &BufferedLog{log: log}
}

func (b *BufferedLog) Begin(name string) {
	b.sections = append(b.sections, section{name: name})
}

func (b *BufferedLog) Write(line string) {
	b.announce()
	b.log.Write(line)
}

// Announce writes the names of all open sections that have not been written yet, without
// writing a line.
func (b *BufferedLog) Announce() {
	b.announce()
}

func (b *BufferedLog) announce() {
	for i := range b.sections {
		if !b.sections[i].announced {
			b.log.Begin(b.sections[i].name)
			b.sections[i].announced = true
		}
	}
}

func (b *BufferedLog) End() {
	n := len(b.sections)
	if n == 0 {
		return
	}
	s := b.sections[n-1]
	b.sections = b.sections[:n-1]
	if s.announced {
		b.log.End()
	}
}

// Depth returns the number of open sections, announced or not.
func (b *BufferedLog) Depth() int {
	return len(b.sections)
}
