package sizer

import "filesize/pkg/bytefmt"

// Options configures a run across one or more paths.
type Options struct {
	// Recursive extends directory measurement to the whole subtree instead
	// of the immediate children.
	Recursive bool
	// Clean emits the raw byte count with no unit, suffix, or file count.
	Clean bool
	// Unit forces the display unit; nil selects one automatically.
	Unit *bytefmt.Unit
}

// Result is the measurement of a single path.
type Result struct {
	Files int
	Size  int64
}

// Outcome is the per-path report entry: the measurement plus its rendered
// line, or the failure that produced an error line instead.
type Outcome struct {
	Path string
	Res  Result
	Err  error
	Line string
}

// Summary aggregates a whole run.
type Summary struct {
	Paths  int
	Failed int
	Files  int
	Bytes  int64
}

// Progress carries incremental deltas for a live display.
type Progress struct {
	PathsDelta  int
	FilesDelta  int
	ErrorsDelta int
	BytesDelta  int64
	Current     string
}
