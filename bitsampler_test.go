package knxtp1

import (
	"context"
	"math"
	"testing"
)

func TestBitSampler_SampleBit_FullCharacter(t *testing.T) {
	bits := characterBits(0x41)
	var rx []int
	rx = appendIdle(rx, 2)
	rx = appendCharacter(rx, bits)
	rx = appendIdle(rx, 4)

	sampler, err := NewBitSampler(57600, PolarityNormal)
	if err != nil {
		t.Fatalf("NewBitSampler: %v", err)
	}
	host := newFakeHost(rx)
	ctx := context.Background()

	edge, err := sampler.WaitForEdge(ctx, host)
	if err != nil {
		t.Fatalf("WaitForEdge: %v", err)
	}

	pos := float64(edge)
	for i, want := range bits {
		target := edge
		if i > 0 {
			pos += sampler.BitWidth()
			target = int64(math.Round(pos))
		}
		bit, err := sampler.SampleBit(ctx, host, target)
		if err != nil {
			t.Fatalf("bit %d: SampleBit: %v", i, err)
		}
		if bit.Value != want {
			t.Errorf("bit %d = %d, want %d", i, bit.Value, want)
		}
	}
}

func TestBitSampler_LateTransitionTolerated(t *testing.T) {
	// frameStart = 2; the bit sampler reads its six sub-samples at
	// frameStart+1..frameStart+6 (indices 3..8). The first five are high,
	// the sixth (last collected) is low — a bus edge arriving late near
	// the end of the cell must still resolve to 1.
	rx := []int{1, 1, 0, 1, 1, 1, 1, 1, 0}
	sampler, err := NewBitSampler(57600, PolarityNormal)
	if err != nil {
		t.Fatalf("NewBitSampler: %v", err)
	}
	host := newFakeHost(rx)
	host.cur = 2

	bit, err := sampler.SampleBit(context.Background(), host, 2)
	if err != nil {
		t.Fatalf("SampleBit: %v", err)
	}
	if bit.Value != 1 {
		t.Errorf("value = %d, want 1", bit.Value)
	}
}

func TestBitSampler_EarlyFallEverywhereResolvesZero(t *testing.T) {
	rx := []int{1, 1, 0, 0, 0, 0, 0, 0, 1}
	sampler, err := NewBitSampler(57600, PolarityNormal)
	if err != nil {
		t.Fatalf("NewBitSampler: %v", err)
	}
	host := newFakeHost(rx)
	host.cur = 2

	bit, err := sampler.SampleBit(context.Background(), host, 2)
	if err != nil {
		t.Fatalf("SampleBit: %v", err)
	}
	if bit.Value != 0 {
		t.Errorf("value = %d, want 0", bit.Value)
	}
}

func TestNewBitSampler_RejectsNonPositiveRate(t *testing.T) {
	if _, err := NewBitSampler(0, PolarityNormal); !IsErrNoSampleRate(err) {
		t.Errorf("err = %v, want errNoSampleRate", err)
	}
	if _, err := NewBitSampler(-1, PolarityNormal); !IsErrNoSampleRate(err) {
		t.Errorf("err = %v, want errNoSampleRate", err)
	}
}
