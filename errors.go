package knxtp1

// errNoSampleRate is returned from Decode when Metadata was never called
// with SampleRate before decoding started.
type errNoSampleRate struct{}

func (e errNoSampleRate) Error() string {
	return "cannot decode without samplerate"
}

// IsErrNoSampleRate reports whether err is the missing-samplerate
// configuration error.
func IsErrNoSampleRate(err error) bool {
	_, ok := err.(errNoSampleRate)
	return ok
}

// errShortTPDU is returned internally when the APDU dissector is invoked
// on a tpdu buffer shorter than the two octets it requires.
type errShortTPDU struct{}

func (e errShortTPDU) Error() string {
	return "tpdu too short for apdu dissection"
}

// IsErrShortTPDU reports whether err is the short-tpdu error.
func IsErrShortTPDU(err error) bool {
	_, ok := err.(errShortTPDU)
	return ok
}
