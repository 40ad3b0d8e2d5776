package knxtp1

import "context"

// Edge selects the transition a Host.Wait call suspends for.
type Edge int

const (
	EdgeFalling Edge = iota
	EdgeRising
	EdgeEither
	EdgeHigh
	EdgeLow
)

// WaitSpec describes one suspension point of the decoder, mirroring the
// host analyzer's wait({channel: edge}) / wait({'skip': n}) primitives. A
// zero Skip means "wait for Edge on Channel"; a positive Skip means
// "advance at least Skip samples and report the level there".
type WaitSpec struct {
	Channel int
	Edge    Edge
	Skip    int64
}

// WaitResult is what the host reports back after a WaitSpec is satisfied:
// the absolute sample index the decoder is now positioned at, and the
// levels sampled on the primary (RX) and optional (TX) channels.
type WaitResult struct {
	SampleNum int64
	RX        int
	TX        int
}

// OutputKind selects which registered output stream a Put call targets.
type OutputKind int

const (
	OutputAnnotation OutputKind = iota
	OutputBinary
)

// OutputHandle is an opaque handle returned by Host.Register, to be passed
// back unchanged to Put/PutBinary.
type OutputHandle int

// Annotation is one (tag, text-alternatives) payload destined for the
// host's annotation output, ordered from longest to most abbreviated text.
type Annotation struct {
	TagID int
	Texts []string
}

// Host is the external collaborator that drives the decoder: it owns the
// sample clock, the logic-level stream, and the annotation/binary output
// sinks. The decoder never touches a clock or a channel buffer directly —
// every suspension point goes through Wait.
type Host interface {
	// Wait blocks until spec is satisfied and returns the sample position
	// and levels observed there. It returns ctx.Err() if ctx is cancelled
	// first.
	Wait(ctx context.Context, spec WaitSpec) (WaitResult, error)

	// Register obtains a handle for one of the decoder's declared output
	// streams (annotation or binary). Called once per stream at startup.
	Register(kind OutputKind) OutputHandle

	// Put delivers an annotation spanning the half-open sample range
	// [ss, se) to the given output.
	Put(ss, se int64, handle OutputHandle, ann Annotation)

	// PutBinary delivers a raw octet to the given binary output, spanning
	// the half-open sample range [ss, se).
	PutBinary(ss, se int64, handle OutputHandle, data []byte)
}

// MetadataKey identifies a piece of metadata the host pushes to the
// decoder before decoding starts.
type MetadataKey int

const (
	// SampleRate carries the sample clock rate in Hz.
	SampleRate MetadataKey = iota
)
