package knxtp1

import (
	"math"
	"strconv"
)

// TPDUDissector resolves the transport-layer control field of an assembled
// TPDU and, for data-carrying TPCI values, hands the TPDU off to the APDU
// dissector.
//
// The control byte (tpdu[0]) is classified using the standard KNX TPCI
// layout: bit7 clear marks unnumbered data (broadcast/group/individual,
// distinguished by the address-type flag and tpdu[0] bit0); bit7 clear with
// bit6 set marks numbered data (T_Data_Connected, sequence number in bits
// 5..2); bit7 set marks a control TPCI (T_Connect/T_Disconnect when bit6 is
// clear, T_ACK/T_NAK with a sequence number in bits 5..2 when bit6 is set).
type TPDUDissector struct {
	emit     *Emitter
	apdu     *APDUDissector
	bitWidth float64
}

// Dissect classifies tpdu[0], emits the transport-layer annotation, and
// dispatches data-carrying TPDUs to the APDU dissector.
func (t *TPDUDissector) Dissect(tpdu []tpduOctet, atFlag bool) {
	if len(tpdu) == 0 {
		return
	}
	first := tpdu[0].value

	var ctrl int
	var seqno int
	hasSeqno := false
	dataCarrying := false

	switch {
	case first&0x80 == 0 && first&0x40 == 0:
		dataCarrying = true
		if atFlag {
			ctrl = 0x8000 | int(first&0x01)
		} else {
			ctrl = 0x0000
		}
	case first&0x80 == 0:
		dataCarrying = true
		hasSeqno = true
		seqno = int(first>>2) & 0x0F
		ctrl = 0x0040
	case first&0x40 == 0:
		ctrl = int(first)
	default:
		hasSeqno = true
		seqno = int(first>>2) & 0x0F
		ctrl = 0x00C0 | int(first&0x03)
	}

	label, ok := transportOpcodes[ctrl]
	texts := []string{"Invalid", "Inv"}
	if ok {
		if hasSeqno {
			label = formatTemplate(label, map[string]string{"seqno": strconv.Itoa(seqno)})
		}
		texts = []string{label}
	}

	se := tpdu[0].rng.SE
	bw := int64(math.Round(t.bitWidth))
	if dataCarrying && len(tpdu) >= 2 {
		candidate := tpdu[1].rng.SS - 2*bw
		if candidate > tpdu[0].rng.SS {
			se = candidate
		}
	}
	t.emit.Annotate(tpdu[0].rng.SS, se, TagTransport, texts)

	if dataCarrying {
		_ = t.apdu.Dissect(tpdu)
	}
}
