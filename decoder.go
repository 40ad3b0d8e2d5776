package knxtp1

import "context"

// Decoder reassembles a KNX TP1 logic-level stream into UART characters,
// link-layer frames and, where the TPCI indicates data, transport and
// application layer annotations. A Decoder is reusable across streams via
// Reset, but Metadata must be called again with the new stream's
// SampleRate before the next Decode.
type Decoder struct {
	opts options

	sampleRate int64
	sampler    *BitSampler
	emit       *Emitter
	uart       *UARTFramer
	link       *LinkFramer
	tpdu       *TPDUDissector
	apdu       *APDUDissector
}

// NewDecoder builds a Decoder from the given options.
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}
	return &Decoder{opts: cfg}
}

// Descriptor reports the decoder's declarative shape.
func (d *Decoder) Descriptor() Descriptor {
	return NewDescriptor()
}

// Metadata records metadata pushed by the host before decoding starts.
// Only SampleRate is currently consumed.
func (d *Decoder) Metadata(key MetadataKey, value int64) error {
	if key == SampleRate {
		d.sampleRate = value
	}
	return nil
}

// Reset discards all per-stream state, so the Decoder can be reused for a
// new capture once Metadata(SampleRate, ...) is called again.
func (d *Decoder) Reset() {
	d.sampleRate = 0
	d.sampler = nil
	d.emit = nil
	d.uart = nil
	d.link = nil
	d.tpdu = nil
	d.apdu = nil
}

// Decode drives the decode loop against host until ctx is cancelled or
// host.Wait returns an error (typically end of stream). It returns
// errNoSampleRate if Metadata was never called with a positive SampleRate.
func (d *Decoder) Decode(ctx context.Context, host Host) error {
	if d.sampleRate <= 0 {
		return errNoSampleRate{}
	}

	sampler, err := NewBitSampler(d.sampleRate, d.opts.polarity)
	if err != nil {
		return err
	}
	d.sampler = sampler
	d.emit = NewEmitter(host)
	d.apdu = &APDUDissector{emit: d.emit, bitWidth: sampler.BitWidth(), metrics: d.opts.metrics}
	d.tpdu = &TPDUDissector{emit: d.emit, apdu: d.apdu, bitWidth: sampler.BitWidth()}
	d.link = NewLinkFramer(d.emit, d.tpdu, d.opts.metrics, sampler.BitWidthSamples())
	d.uart = NewUARTFramer(sampler, d.emit, d.link, d.opts.metrics)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.uart.RunOnce(ctx, host); err != nil {
			return err
		}
	}
}
