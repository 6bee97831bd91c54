package graph

import "fmt"

// WriteError means a graph description file could not be written. The export it belongs
// to did nothing beyond advancing the counter.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// RenderError means the rasterizer could not be started or exited with a failure.
// It never affects evaluated results.
type RenderError struct {
	Dot    string
	Output string // anything the rasterizer wrote to stderr
	Err    error
}

func (e *RenderError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("render %s: %v: %s", e.Dot, e.Err, e.Output)
	}
	return fmt.Sprintf("render %s: %v", e.Dot, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
