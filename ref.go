package inifile

// document is the ordered list of line records of a config file. Every
// record keeps its line terminator.
type document struct {
	lines []string
}

func (d *document) String() string {
	n := 0
	for _, l := range d.lines {
		n += len(l)
	}

	buf := make([]byte, 0, n)
	for _, l := range d.lines {
		buf = append(buf, l...)
	}

	return string(buf)
}

// ValueRef points at the byte range [from, to) of one line of a document.
// It does not copy the value, every Read slices the live line.
//
// Writes only update the end offset of the ref itself. Another ref into the
// same line would see stale offsets, which is why the parser creates at most
// one ValueRef per line. Any change to the grammar that allows more than one
// value per line must revisit Write.
type ValueRef struct {
	doc  *document
	line int
	from int
	to   int
}

// Read returns the current text of the referenced span.
func (r *ValueRef) Read() string {
	return r.doc.lines[r.line][r.from:r.to]
}

// Write replaces the referenced span with text. Only the referenced line
// changes. text must not contain a line terminator.
func (r *ValueRef) Write(text string) {
	l := r.doc.lines[r.line]
	r.doc.lines[r.line] = l[:r.from] + text + l[r.to:]
	r.to = r.from + len(text)
}

// Line returns the 1-based line number of the referenced span.
func (r *ValueRef) Line() int {
	return r.line + 1
}
