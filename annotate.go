package knxtp1

import "sync"

// TagID is the stable numeric identifier of one annotation class. Hot-path
// code always uses these constants directly rather than resolving a name.
type TagID int

const (
	TagStart TagID = iota
	TagData
	TagParityOK
	TagParityErr
	TagStopOK
	TagStopErr
	TagRaw
	TagLink
	TagTransport
	TagApplication
)

var tagNames = [...]string{
	TagStart:       "start",
	TagData:        "data",
	TagParityOK:    "parity-ok",
	TagParityErr:   "parity-err",
	TagStopOK:      "stop-ok",
	TagStopErr:     "stop-err",
	TagRaw:         "raw",
	TagLink:        "link",
	TagTransport:   "transport",
	TagApplication: "application",
}

var (
	tagCacheMu sync.Mutex
	tagCache   map[string]TagID
)

// TagIDForName resolves a symbolic tag name to its TagID via a lazily
// populated cache. It exists for callers outside the hot decode path (such
// as tests) that only know a tag by name.
func TagIDForName(name string) (TagID, bool) {
	tagCacheMu.Lock()
	defer tagCacheMu.Unlock()
	if tagCache == nil {
		tagCache = make(map[string]TagID, len(tagNames))
		for id, n := range tagNames {
			tagCache[n] = TagID(id)
		}
	}
	id, ok := tagCache[name]
	return id, ok
}

// annotationRow groups related tag ids under one display row.
type annotationRow struct {
	ID   string
	Desc string
	Tags []TagID
}

var annotationRows = []annotationRow{
	{"bits", "Bits", []TagID{TagStart, TagData, TagParityOK, TagParityErr, TagStopOK, TagStopErr}},
	{"raw-data", "Raw data", []TagID{TagRaw}},
	{"layers", "Layers", []TagID{TagLink, TagTransport, TagApplication}},
}

// Emitter is a thin façade over a Host's registered outputs. It owns the
// annotation and binary output handles so framers never talk to the Host
// directly.
type Emitter struct {
	host      Host
	annOut    OutputHandle
	binOut    OutputHandle
}

// NewEmitter registers the decoder's two output streams with host.
func NewEmitter(host Host) *Emitter {
	return &Emitter{
		host:   host,
		annOut: host.Register(OutputAnnotation),
		binOut: host.Register(OutputBinary),
	}
}

// Annotate emits one annotation spanning [ss, se) under tag.
func (e *Emitter) Annotate(ss, se int64, tag TagID, texts []string) {
	e.host.Put(ss, se, e.annOut, Annotation{TagID: int(tag), Texts: texts})
}

// Binary emits one raw octet to the rxtx binary stream, spanning [ss, se).
func (e *Emitter) Binary(ss, se int64, data []byte) {
	e.host.PutBinary(ss, se, e.binOut, data)
}
