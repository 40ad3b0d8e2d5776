package knxtp1

import (
	"context"
	"errors"
)

var errEndOfStream = errors.New("end of fake sample stream")

type annCall struct {
	ss, se int64
	ann    Annotation
}

type binCall struct {
	ss, se int64
	data   []byte
}

// fakeHost replays a fixed rx sample array and records every Put/PutBinary
// call, for driving the decoder deterministically in tests.
type fakeHost struct {
	rx  []int
	cur int64

	anns []annCall
	bins []binCall
}

func newFakeHost(rx []int) *fakeHost {
	return &fakeHost{rx: rx, cur: 0}
}

func (h *fakeHost) Register(kind OutputKind) OutputHandle {
	if kind == OutputAnnotation {
		return OutputHandle(0)
	}
	return OutputHandle(1)
}

func (h *fakeHost) Put(ss, se int64, handle OutputHandle, ann Annotation) {
	h.anns = append(h.anns, annCall{ss, se, ann})
}

func (h *fakeHost) PutBinary(ss, se int64, handle OutputHandle, data []byte) {
	cp := append([]byte(nil), data...)
	h.bins = append(h.bins, binCall{ss, se, cp})
}

func (h *fakeHost) Wait(ctx context.Context, spec WaitSpec) (WaitResult, error) {
	if err := ctx.Err(); err != nil {
		return WaitResult{}, err
	}
	if spec.Skip > 0 {
		h.cur += spec.Skip
		if h.cur >= int64(len(h.rx)) {
			return WaitResult{}, errEndOfStream
		}
		return WaitResult{SampleNum: h.cur, RX: h.rx[h.cur]}, nil
	}
	for i := h.cur + 1; i < int64(len(h.rx)); i++ {
		prev := h.rx[i-1]
		cand := h.rx[i]
		matched := false
		switch spec.Edge {
		case EdgeFalling:
			matched = prev == 1 && cand == 0
		case EdgeRising:
			matched = prev == 0 && cand == 1
		case EdgeEither:
			matched = prev != cand
		}
		if matched {
			h.cur = i
			return WaitResult{SampleNum: i, RX: cand}, nil
		}
	}
	return WaitResult{}, errEndOfStream
}

// characterBits returns the 12 UART bit values (start, 8 data bits
// LSB-first, even parity, stop, stop) for value.
func characterBits(value byte) []int {
	bits := make([]int, 0, 12)
	bits = append(bits, 0)
	parity := 0
	for i := 0; i < 8; i++ {
		b := int((value >> uint(i)) & 1)
		bits = append(bits, b)
		parity ^= b
	}
	bits = append(bits, parity)
	bits = append(bits, 1, 1)
	return bits
}

// appendCharacter appends one UART character to rx: a redundant trigger
// sample equal to the start bit's level (so WaitForEdge can find it),
// followed by six samples per bit — matching BitSampler's sub-sample
// windowing, which reads each bit's six sub-samples one past its nominal
// frame-start offset.
func appendCharacter(rx []int, bits []int) []int {
	rx = append(rx, bits[0])
	for _, b := range bits {
		for i := 0; i < 6; i++ {
			rx = append(rx, b)
		}
	}
	return rx
}

// appendIdle appends n idle-high samples.
func appendIdle(rx []int, n int) []int {
	for i := 0; i < n; i++ {
		rx = append(rx, 1)
	}
	return rx
}
