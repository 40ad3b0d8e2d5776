package knxtp1

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

var _lg = logrus.New()

// SetLogger replaces the package-level logger used for per-octet and
// per-frame diagnostics. The default logger (logrus.New()) logs to stderr at
// Info level; a nil lg is ignored.
func SetLogger(lg *logrus.Logger) {
	if lg != nil {
		_lg = lg
	}
}

func parseBigEndianUint16(hi, lo byte) uint16 {
	return binary.BigEndian.Uint16([]byte{hi, lo})
}

// groupAddr renders a 16-bit KNX group/individual address as main/middle/sub
// using the single A/B/C convention (the A.B.C individual-only rendering is
// a superseded historical variant).
func groupAddr(addr uint16) (main, middle uint8, sub uint8) {
	return uint8(addr >> 12), uint8((addr >> 8) & 0xF), uint8(addr & 0xFF)
}
