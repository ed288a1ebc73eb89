package trace

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/substrate-os/substrate/go/models"
)

var TRACE_MAGIC = "SBTR"

type TraceHeader struct {
	// MAGIC ("SBTR")
	Magic string `struc:"[4]byte" json:"-"`
	// file format version
	Version uint32 `json:"version"`

	// architecture name, right-null-padded
	Arch string `struc:"[32]byte" json:"arch"`

	// Byte Order - 0 for little, 1 for big
	OrderNum  uint8            `json:"-"`
	OrderName string           `struc:"skip" json:"order"`
	Order     binary.ByteOrder `struc:"skip" json:"-"`
}

type TraceWriter struct {
	w, zw io.WriteCloser
}

func NewWriter(w io.WriteCloser, m models.Machine) (*TraceWriter, error) {
	order := m.ByteOrder()
	var num uint8
	var name string
	if order == binary.LittleEndian {
		num = 0
		name = "little"
	} else if order == binary.BigEndian {
		num = 1
		name = "big"
	}
	header := &TraceHeader{
		Magic:   TRACE_MAGIC,
		Version: 1,
		Arch:    m.Arch().Name,

		OrderNum:  num,
		OrderName: name,
		Order:     order,
	}
	if err := struc.Pack(w, header); err != nil {
		return nil, errors.Wrap(err, "failed to pack header")
	}
	zw := snappy.NewBufferedWriter(w)
	return &TraceWriter{w: w, zw: zw}, nil
}

// write one op at a time
func (t *TraceWriter) Pack(op Op) error {
	return Pack(t.zw, op)
}

func (t *TraceWriter) Close() {
	t.zw.Close()
	t.w.Close()
}

type TraceReader struct {
	r      io.ReadCloser
	zr     *snappy.Reader
	Header TraceHeader
}

func NewReader(r io.ReadCloser) (*TraceReader, error) {
	t := &TraceReader{r: r}
	if err := struc.Unpack(r, &t.Header); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if t.Header.Magic != TRACE_MAGIC {
		return nil, errors.New("invalid trace file magic")
	}
	t.Header.Arch = strings.TrimRight(t.Header.Arch, "\x00")
	switch t.Header.OrderNum {
	case 0:
		t.Header.Order = binary.LittleEndian
		t.Header.OrderName = "little"
	case 1:
		t.Header.Order = binary.BigEndian
		t.Header.OrderName = "big"
	}
	t.zr = snappy.NewReader(r)
	return t, nil
}

func (t *TraceReader) Next() (Op, error) {
	return Unpack(t.zr)
}

func (t *TraceReader) Close() {
	t.zr.Reset(nil)
	t.r.Close()
}
