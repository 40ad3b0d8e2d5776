package knxtp1

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// APDUDissector resolves the 10-bit application control field spanning the
// first two TPDU octets and labels any remaining octets as application
// data.
type APDUDissector struct {
	emit     *Emitter
	bitWidth float64
	metrics  *Metrics
}

// Dissect computes actrl from tpdu[0]/tpdu[1] and emits the application
// layer annotation. It returns errShortTPDU if tpdu has fewer than two
// octets.
func (a *APDUDissector) Dissect(tpdu []tpduOctet) error {
	if len(tpdu) < 2 {
		return errShortTPDU{}
	}
	actrl := (int(tpdu[0].value)<<8)&0x300 | int(tpdu[1].value)

	data := make([]string, 0, len(tpdu)-2)
	for _, o := range tpdu[2:] {
		data = append(data, fmt.Sprintf("%02X", o.value))
	}
	dataHex := strings.Join(data, " ")

	var texts []string
	switch {
	case actrl >= 0x2CA && actrl <= 0x2F7:
		texts = a.formatRange(0x2CA, actrl, dataHex)
	case actrl >= 0x2F8 && actrl <= 0x2FE:
		texts = a.formatRange(0x2F8, actrl, dataHex)
	default:
		if tmpl, ok := apciTable[actrl]; ok {
			texts = []string{tmpl}
		} else {
			texts = []string{"Invalid", "Inv"}
			a.metrics.unknownOpcodes.Inc()
		}
	}

	bw := int64(math.Round(a.bitWidth))
	ss := tpdu[0].rng.SE - 2*bw
	if ss < tpdu[0].rng.SS {
		ss = tpdu[0].rng.SS
	}
	se := tpdu[len(tpdu)-1].rng.SE
	a.emit.Annotate(ss, se, TagApplication, texts)
	return nil
}

func (a *APDUDissector) formatRange(base, actrl int, dataHex string) []string {
	tmpl, ok := apciTable[base]
	if !ok {
		return []string{"Invalid", "Inv"}
	}
	no := actrl - base
	label := formatTemplate(tmpl, map[string]string{"no": strconv.Itoa(no), "data": dataHex})
	return []string{label}
}
