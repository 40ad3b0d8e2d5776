package knxtp1

// ChannelDescriptor describes one logic-level input channel.
type ChannelDescriptor struct {
	ID, Name, Desc string
}

// OptionDescriptor describes one user-configurable decoder option.
type OptionDescriptor struct {
	ID, Desc string
	Default  string
	Values   []string
}

// AnnotationDescriptor names one annotation class, in TagID order.
type AnnotationDescriptor struct {
	ID, Desc string
}

// AnnotationRowDescriptor groups annotation tag ids under a display row.
type AnnotationRowDescriptor struct {
	ID, Desc string
	Tags     []int
}

// BinaryDescriptor names one binary output stream.
type BinaryDescriptor struct {
	ID, Desc string
}

// Descriptor is the declarative shape a Host uses to present the decoder:
// its identity, required/optional channels, options, and output streams.
type Descriptor struct {
	ID, Name, LongName, Desc string
	Tags                     []string
	Channels                 []ChannelDescriptor
	OptionalChannels         []ChannelDescriptor
	Options                  []OptionDescriptor
	Annotations              []AnnotationDescriptor
	AnnotationRows           []AnnotationRowDescriptor
	Binary                   []BinaryDescriptor
}

// NewDescriptor builds the decoder's descriptor.
func NewDescriptor() Descriptor {
	rows := make([]AnnotationRowDescriptor, 0, len(annotationRows))
	for _, r := range annotationRows {
		tags := make([]int, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, int(t))
		}
		rows = append(rows, AnnotationRowDescriptor{ID: r.ID, Desc: r.Desc, Tags: tags})
	}

	return Descriptor{
		ID:       "knx-tp1",
		Name:     "KNX TP1",
		LongName: "KNX fieldbus, TP1 medium",
		Desc:     "KNX fieldbus (TP1 medium) UART, link, transport and application layers.",
		Tags:     []string{"Automation"},
		Channels: []ChannelDescriptor{
			{ID: "knx", Name: "KNX", Desc: "KNX TP1 data line"},
		},
		OptionalChannels: []ChannelDescriptor{
			{ID: "tx", Name: "KNX TX", Desc: "KNX TP1 transmit line, for half-duplex transceivers"},
		},
		Options: []OptionDescriptor{
			{ID: "polarity", Desc: "Bus idle polarity", Default: "normal", Values: []string{"normal", "inverted"}},
		},
		Annotations: []AnnotationDescriptor{
			{ID: "start", Desc: "Start bit"},
			{ID: "data", Desc: "Data bit"},
			{ID: "parity-ok", Desc: "Parity bit, OK"},
			{ID: "parity-err", Desc: "Parity bit, error"},
			{ID: "stop-ok", Desc: "Stop bit, OK"},
			{ID: "stop-err", Desc: "Stop bit, error"},
			{ID: "raw", Desc: "Raw octet"},
			{ID: "link", Desc: "Link layer"},
			{ID: "transport", Desc: "Transport layer"},
			{ID: "application", Desc: "Application layer"},
		},
		AnnotationRows: rows,
		Binary: []BinaryDescriptor{
			{ID: "rxtx", Desc: "RX/TX octet stream"},
		},
	}
}
