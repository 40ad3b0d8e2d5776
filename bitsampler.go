package knxtp1

import (
	"context"
	"math"
)

// Polarity selects which transition marks the start of a UART character.
type Polarity int

const (
	PolarityNormal Polarity = iota
	PolarityInverted
)

// SampleRange is a half-open interval [SS, SE) of sample indices.
type SampleRange struct {
	SS, SE int64
}

// Bit is one logical UART bit value, recovered from six oversampled
// sub-samples within its bit period, plus the sample range it spans.
type Bit struct {
	Value int
	Range SampleRange
}

// BitSampler turns a 9600-baud logic-level stream into a sequence of
// logical bits. Each bit period is oversampled six times; the bit resolves
// to 1 only if the five earliest sub-samples are all high, which tolerates
// a bus edge that arrives late near the end of the cell.
type BitSampler struct {
	sampleRate int64
	bitWidth   float64 // samples per 9600-baud bit period, sub-sample precision
	polarity   Polarity
}

// quorumMask covers sub-samples 0..4 of the six collected per bit; bit 0
// (the sixth, latest sub-sample) is deliberately excluded from the vote.
const quorumMask = 0x3E

// NewBitSampler derives the bit period from sampleRate (Hz). sampleRate
// must be positive.
func NewBitSampler(sampleRate int64, polarity Polarity) (*BitSampler, error) {
	if sampleRate <= 0 {
		return nil, errNoSampleRate{}
	}
	return &BitSampler{
		sampleRate: sampleRate,
		bitWidth:   float64(sampleRate) / 9600.0,
		polarity:   polarity,
	}, nil
}

// BitWidth reports the sub-sample-precision bit period, in samples.
func (b *BitSampler) BitWidth() float64 {
	return b.bitWidth
}

// BitWidthSamples rounds the bit period to the nearest whole sample, for
// callers that only need a coarse span (idle-gap comparisons, annotation
// windows).
func (b *BitSampler) BitWidthSamples() int64 {
	return int64(math.Round(b.bitWidth))
}

// SampleBit collects the six oversampled sub-samples of one bit period
// starting at frameStart (the sample index of the edge, or of the
// preceding bit's final sub-sample) and resolves them via quorum vote.
// It returns the bit and the sample range from the first to the last
// sub-sample collected.
func (b *BitSampler) SampleBit(ctx context.Context, host Host, frameStart int64) (Bit, error) {
	bw := b.bitWidth
	sub := bw / 6
	offset := math.Round(bw / 12)

	cur := frameStart
	var word int
	var ss, se int64
	for k := 0; k < 6; k++ {
		target := frameStart + int64(math.Round(offset+float64(k)*sub))
		delta := target - cur
		if delta < 1 {
			delta = 1
		}
		res, err := host.Wait(ctx, WaitSpec{Skip: delta})
		if err != nil {
			return Bit{}, err
		}
		cur = res.SampleNum
		lvl := res.RX
		if b.polarity == PolarityInverted {
			lvl ^= 1
		}
		word = (word << 1) | (lvl & 1)
		if k == 0 {
			ss = cur
		}
	}
	se = cur

	value := 0
	if word&quorumMask == quorumMask {
		value = 1
	}
	return Bit{Value: value, Range: SampleRange{SS: ss, SE: se}}, nil
}

// WaitForEdge suspends until the configured polarity's frame-start
// transition occurs on the primary channel, and returns its sample index.
func (b *BitSampler) WaitForEdge(ctx context.Context, host Host) (int64, error) {
	edge := EdgeFalling
	if b.polarity == PolarityInverted {
		edge = EdgeRising
	}
	res, err := host.Wait(ctx, WaitSpec{Channel: 0, Edge: edge})
	if err != nil {
		return 0, err
	}
	return res.SampleNum, nil
}
