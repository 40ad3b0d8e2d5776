package knxtp1

import "testing"

func sr(ss, se int64) SampleRange { return SampleRange{SS: ss, SE: se} }

func newTestLinkFramer() (*LinkFramer, *fakeHost) {
	host := newFakeHost([]int{1})
	emit := NewEmitter(host)
	metrics := NewMetrics(nil)
	apdu := &APDUDissector{emit: emit, bitWidth: 6, metrics: metrics}
	tpdu := &TPDUDissector{emit: emit, apdu: apdu, bitWidth: 6}
	return NewLinkFramer(emit, tpdu, metrics, 6), host
}

func feedFrame(l *LinkFramer, octets []byte) {
	for i, o := range octets {
		ss := int64(i * 12)
		l.HandleOctet(o, sr(ss, ss+12))
	}
}

func TestLinkFramer_ACKFrame(t *testing.T) {
	link, host := newTestLinkFramer()
	link.HandleOctet(0xCC, sr(0, 12))

	if len(host.anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(host.anns))
	}
	if host.anns[0].ann.Texts[0] != "ACK" {
		t.Errorf("text = %q, want ACK", host.anns[0].ann.Texts[0])
	}
}

func TestLinkFramer_InvalidAckShapedOctet(t *testing.T) {
	link, host := newTestLinkFramer()
	link.HandleOctet(0x88, sr(0, 12)) // octet&0x33==0 but not in ackFrameLabels

	if len(host.anns) != 1 || host.anns[0].ann.Texts[0] != "Invalid" {
		t.Errorf("anns = %+v, want a single Invalid annotation", host.anns)
	}
}

func TestLinkFramer_GroupValueWrite(t *testing.T) {
	link, host := newTestLinkFramer()
	frame := []byte{0xBC, 0x11, 0x01, 0x11, 0x09, 0xE1, 0x00, 0x80, 0x2A}
	feedFrame(link, frame)

	var sawTransport, sawApplication bool
	for _, a := range host.anns {
		if a.ann.TagID == int(TagTransport) {
			sawTransport = true
			if a.ann.Texts[0] != "T_Data_Broadcast/T_Data_Group" {
				t.Errorf("transport text = %q", a.ann.Texts[0])
			}
		}
		if a.ann.TagID == int(TagApplication) {
			sawApplication = true
			if a.ann.Texts[0] != "A_GroupValue_Write" {
				t.Errorf("application text = %q", a.ann.Texts[0])
			}
		}
	}
	if !sawTransport || !sawApplication {
		t.Fatalf("sawTransport=%v sawApplication=%v", sawTransport, sawApplication)
	}
}

func TestLinkFramer_FCSError(t *testing.T) {
	link, host := newTestLinkFramer()
	frame := []byte{0xBC, 0x11, 0x01, 0x11, 0x09, 0xE1, 0x00, 0x80, 0x00} // bad FCS
	feedFrame(link, frame)

	found := false
	for _, a := range host.anns {
		if a.ann.TagID == int(TagLink) && len(a.ann.Texts) > 1 && a.ann.Texts[1] == "FCS error" {
			found = true
		}
	}
	if !found {
		t.Error("expected an FCS error annotation")
	}
}

func TestLinkFramer_IdleGapResyncsMidFrame(t *testing.T) {
	link, host := newTestLinkFramer()
	// Start a frame, then let a 10-bit-period idle gap intervene before
	// the source address octets arrive: the partial frame must be
	// discarded rather than misinterpreted as a continuation.
	link.HandleOctet(0xBC, sr(0, 12))
	link.HandleOctet(0xCC, sr(12+100, 12+100+12)) // ACK frame after the gap

	if len(host.anns) != 2 {
		t.Fatalf("got %d annotations, want 2 (one per frame)", len(host.anns))
	}
	if host.anns[1].ann.Texts[0] != "ACK" {
		t.Errorf("second frame text = %q, want ACK", host.anns[1].ann.Texts[0])
	}
}
