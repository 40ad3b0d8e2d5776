package knxtp1

import (
	"context"
	"fmt"
	"math"
)

// UARTFramer runs the IDLE/DATA/PARITY/STOP state machine on top of a
// BitSampler and delivers successfully framed octets to a LinkFramer. One
// character (start + 8 data + parity + 2 stop, 12 bit periods) is decoded
// per RunOnce call.
type UARTFramer struct {
	sampler *BitSampler
	emit    *Emitter
	link    *LinkFramer
	metrics *Metrics
}

// NewUARTFramer wires a UART state machine to its bit source, annotation
// sink and downstream link framer.
func NewUARTFramer(sampler *BitSampler, emit *Emitter, link *LinkFramer, metrics *Metrics) *UARTFramer {
	return &UARTFramer{sampler: sampler, emit: emit, link: link, metrics: metrics}
}

// RunOnce waits for the next falling (or rising, if inverted) edge, retries
// through IDLE on a start-bit glitch, and otherwise samples a full
// character and hands the resulting octet to the link framer unless a
// parity or stop error suppresses delivery.
func (u *UARTFramer) RunOnce(ctx context.Context, host Host) error {
	for {
		edgeSample, err := u.sampler.WaitForEdge(ctx, host)
		if err != nil {
			return err
		}

		startBit, err := u.sampler.SampleBit(ctx, host, edgeSample)
		if err != nil {
			return err
		}
		if startBit.Value != 0 {
			continue
		}
		u.emit.Annotate(startBit.Range.SS, startBit.Range.SE, TagStart, []string{"Start bit", "Start", "S"})

		pos := float64(edgeSample)
		var value byte
		var parity int
		var dataSS, dataSE int64
		for bitnum := 0; bitnum < 8; bitnum++ {
			pos += u.sampler.BitWidth()
			bit, err := u.sampler.SampleBit(ctx, host, int64(math.Round(pos)))
			if err != nil {
				return err
			}
			if bitnum == 0 {
				dataSS = bit.Range.SS
			}
			dataSE = bit.Range.SE

			label := "0"
			if bit.Value == 1 {
				label = "1"
			}
			u.emit.Annotate(bit.Range.SS, bit.Range.SE, TagData, []string{fmt.Sprintf("Data bit %d: %s", bitnum, label), label})

			value |= byte(bit.Value) << uint(bitnum)
			parity ^= bit.Value
		}
		u.emit.Annotate(dataSS, dataSE, TagRaw, []string{fmt.Sprintf("%02X", value)})
		u.emit.Binary(dataSS, dataSE, []byte{value})

		pos += u.sampler.BitWidth()
		parityBit, err := u.sampler.SampleBit(ctx, host, int64(math.Round(pos)))
		if err != nil {
			return err
		}
		parity ^= parityBit.Value
		parityOK := parity == 0
		if parityOK {
			u.emit.Annotate(parityBit.Range.SS, parityBit.Range.SE, TagParityOK, []string{"Parity bit", "Parity", "P"})
		} else {
			u.emit.Annotate(parityBit.Range.SS, parityBit.Range.SE, TagParityErr, []string{"Parity error", "Par err", "PE"})
			u.metrics.parityErrors.Inc()
			_lg.Warnf("parity error on octet %02X", value)
		}

		octetSS := startBit.Range.SS
		var octetSE int64
		stopOK := true
		for i := 0; i < 2; i++ {
			pos += u.sampler.BitWidth()
			stopBit, err := u.sampler.SampleBit(ctx, host, int64(math.Round(pos)))
			if err != nil {
				return err
			}
			if stopBit.Value == 1 {
				u.emit.Annotate(stopBit.Range.SS, stopBit.Range.SE, TagStopOK, []string{"Stop bit", "Stop", "T"})
			} else {
				u.emit.Annotate(stopBit.Range.SS, stopBit.Range.SE, TagStopErr, []string{"Stop bit error", "Stop err", "TE"})
				stopOK = false
				_lg.Warnf("stop bit error on octet %02X", value)
			}
			octetSE = stopBit.Range.SE
		}
		if !stopOK {
			u.metrics.stopErrors.Inc()
		}

		if parityOK && stopOK {
			u.link.HandleOctet(value, SampleRange{SS: octetSS, SE: octetSE})
		}
		return nil
	}
}
