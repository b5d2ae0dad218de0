// Package capture defines the Capturer collaborator interface the
// screen-update pipeline consumes, and a reference RegionDiffer that
// computes the dirty region between two raw frames by byte comparison.
// Real platform capture backends (GUI session attachment, OS screen APIs)
// are external collaborators, named but not implemented here.
package capture

import "github.com/aspia-go/core/pkg/desktop"

// Capturer produces successive desktop frames. CaptureFrame blocks until a
// new frame is available or ctx-equivalent cancellation is signalled by the
// caller closing the capturer; implementations own their own platform
// resources.
type Capturer interface {
	// CaptureFrame returns the next captured frame. The returned Frame's
	// Dirty region is left empty; callers compute it via RegionDiffer or
	// an equivalent.
	CaptureFrame() (*desktop.Frame, error)

	// Close releases any platform resources held by the capturer.
	Close() error
}
