package knxtp1

import "fmt"

// FrameClass classifies a link-layer frame from its first octet.
type FrameClass int

const (
	FrameClassACK FrameClass = iota
	FrameClassPoll
	FrameClassDataStandard
	FrameClassDataExtended
	FrameClassInvalid
)

// classifyFirstOctet reports the frame's class and the label texts for its
// CTRL annotation, following the bit layout in spec §4.3.
func classifyFirstOctet(octet byte) (FrameClass, []string) {
	switch {
	case octet&0x33 == 0:
		if texts, ok := ackFrameLabels[octet]; ok {
			return FrameClassACK, texts
		}
		return FrameClassInvalid, []string{"Invalid", "Inv"}
	case octet == 0xF0:
		return FrameClassPoll, []string{"Poll Data Frame", "Poll", "Pl"}
	case octet&0x80 != 0:
		repeated := ""
		if octet&0x20 == 0 {
			repeated = "Repeated "
		}
		prio := priorityLabels[octet&0x0C]
		name := "Unknown"
		if len(prio) > 0 {
			name = prio[0]
		}
		return FrameClassDataStandard, []string{fmt.Sprintf("%sData Standard Frame, %s", repeated, name)}
	default:
		return FrameClassDataExtended, []string{"Data Extended Frame", "Data Ext", "DE"}
	}
}

// tpduOctet is one octet of the accumulated TPDU payload, with its sample
// range for later annotation.
type tpduOctet struct {
	value byte
	rng   SampleRange
}

// linkState is the per-frame accumulator of LinkFramer; it is reset to its
// zero value at the start of every new frame.
type linkState struct {
	octetNum   int
	fcs        byte
	lastSS     int64
	lastOctet  byte
	atFlag     bool
	length     int
	tpdu       []tpduOctet
	frameClass FrameClass
}

// LinkFramer assembles octets delivered by a UARTFramer into KNX link-layer
// frames: it classifies the first octet, assembles source/destination
// addresses, accumulates the TPDU and checks the frame check sequence. An
// idle gap of ten bit periods or more between consecutive octets resyncs
// to a fresh frame, discarding whatever was in progress.
type LinkFramer struct {
	emit    *Emitter
	tpdu    *TPDUDissector
	metrics *Metrics
	idleGap int64

	st           linkState
	haveLast     bool
	lastOctetEnd int64
}

// NewLinkFramer wires a link framer to its downstream TPDU dissector.
// bitWidthSamples is the rounded bit period, used for the idle-gap resync
// threshold (ten bit periods).
func NewLinkFramer(emit *Emitter, tpdu *TPDUDissector, metrics *Metrics, bitWidthSamples int64) *LinkFramer {
	return &LinkFramer{emit: emit, tpdu: tpdu, metrics: metrics, idleGap: 10 * bitWidthSamples}
}

// Reset discards any in-progress frame, as if an idle gap had just been
// observed.
func (l *LinkFramer) Reset() {
	l.st = linkState{}
	l.haveLast = false
}

// HandleOctet feeds one successfully UART-framed octet into the link-layer
// state machine.
func (l *LinkFramer) HandleOctet(octet byte, rng SampleRange) {
	if l.haveLast && rng.SS-l.lastOctetEnd >= l.idleGap {
		l.st = linkState{}
	}
	l.haveLast = true
	l.lastOctetEnd = rng.SE

	_lg.Debugf("link octet_num=%d fcs=%02X octet=%02X", l.st.octetNum, l.st.fcs, octet)

	switch {
	case l.st.octetNum == 0:
		l.st.fcs = 0xFF
		class, texts := classifyFirstOctet(octet)
		l.st.frameClass = class
		l.emit.Annotate(rng.SS, rng.SE, TagLink, texts)
		l.metrics.framesDecoded.Inc()
		if class == FrameClassACK || class == FrameClassPoll || class == FrameClassInvalid {
			l.st = linkState{}
			return
		}

	case l.st.octetNum == 2:
		addr := parseBigEndianUint16(l.st.lastOctet, octet)
		main, mid, sub := groupAddr(addr)
		l.emit.Annotate(l.st.lastSS, rng.SE, TagLink, []string{fmt.Sprintf("Source Address: %d/%d/%d", main, mid, sub)})

	case l.st.octetNum == 4:
		addr := parseBigEndianUint16(l.st.lastOctet, octet)
		main, mid, sub := groupAddr(addr)
		l.emit.Annotate(l.st.lastSS, rng.SE, TagLink,
			[]string{fmt.Sprintf("Destination Address: %d/%d/%d", main, mid, sub)})

	case l.st.octetNum == 5:
		l.st.atFlag = octet&0x80 != 0
		hop := (octet >> 4) & 0x07
		l.st.length = int(octet & 0x0F)
		at := "Individual Address"
		if l.st.atFlag {
			at = "Group Address"
		}
		l.emit.Annotate(rng.SS, rng.SE, TagLink,
			[]string{fmt.Sprintf("%s, Hop count: %d, Length: %d", at, hop, l.st.length)})

	case l.st.octetNum > 5 && l.st.octetNum <= 6+l.st.length:
		l.st.tpdu = append(l.st.tpdu, tpduOctet{value: octet, rng: rng})
	}

	if l.st.octetNum == 7+l.st.length && l.st.octetNum > 5 {
		if l.st.fcs == octet {
			l.emit.Annotate(rng.SS, rng.SE, TagLink, []string{"FCS OK", "FCS", "F"})
			l.tpdu.Dissect(l.st.tpdu, l.st.atFlag)
		} else {
			l.emit.Annotate(rng.SS, rng.SE, TagLink,
				[]string{fmt.Sprintf("FCS error (expected %02X)", l.st.fcs), "FCS error", "FE"})
			l.metrics.fcsErrors.Inc()
			_lg.Errorf("fcs mismatch: frame_class=%v got=%02X want=%02X", l.st.frameClass, octet, l.st.fcs)
		}
		l.st = linkState{}
		return
	}

	l.st.fcs ^= octet
	l.st.lastSS = rng.SS
	l.st.lastOctet = octet
	l.st.octetNum++
}
