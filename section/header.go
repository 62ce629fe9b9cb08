package section

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/npyz/endian"
	"github.com/arloliu/npyz/errs"
)

// Header is the NPY header: type descriptor, memory order and shape.
//
// Version is informational on encode: Bytes always picks the smallest version
// whose length field can represent the padded header string. Decoded headers
// carry the version found in the stream.
type Header struct {
	Version      Version
	Descr        string
	FortranOrder bool
	Shape        []int
}

// NewHeader creates a header for the given descriptor, memory order and shape.
func NewHeader(descr string, fortranOrder bool, shape []int) *Header {
	return &Header{
		Version:      V1,
		Descr:        descr,
		FortranOrder: fortranOrder,
		Shape:        shape,
	}
}

// Dict returns the unpadded header dictionary literal, for example
//
//	{'descr': '<f8', 'fortran_order': True, 'shape': (2, 3), }
func (h *Header) Dict() string {
	var sb strings.Builder
	sb.Grow(64 + 8*len(h.Shape))
	sb.WriteString("{'descr': '")
	sb.WriteString(h.Descr)
	sb.WriteString("', 'fortran_order': ")
	if h.FortranOrder {
		sb.WriteString("True")
	} else {
		sb.WriteString("False")
	}
	sb.WriteString(", 'shape': ")
	sb.WriteString(FormatShape(h.Shape))
	sb.WriteString(", }")

	return sb.String()
}

// FormatShape renders shape as a tuple literal: "()", "(5,)" or "(2, 3)".
func FormatShape(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(shape[0]) + ",)"
	}

	buf := make([]byte, 0, 2+8*len(shape))
	buf = append(buf, '(')
	for i, d := range shape {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		buf = strconv.AppendInt(buf, int64(d), 10)
	}
	buf = append(buf, ')')

	return string(buf)
}

// Validate checks the descriptor and shape can be encoded.
func (h *Header) Validate() error {
	if h.Descr == "" || strings.ContainsAny(h.Descr, "'\\\n") {
		return fmt.Errorf("%w: malformed descriptor %q", errs.ErrEncoding, h.Descr)
	}
	for i, d := range h.Shape {
		if d < 0 {
			return fmt.Errorf("%w: dimension %d has negative extent %d", errs.ErrInvalidShape, i, d)
		}
	}

	return nil
}

// layout returns the version and the padding needed so that the preamble
// length is a multiple of Alignment.
func layout(dictLen int) (Version, int, error) {
	for _, v := range []Version{V1, V2} {
		prefix := MagicSize + VersionSize + v.lengthSize()
		unpadded := prefix + dictLen + 1 // trailing newline
		pad := (Alignment - unpadded%Alignment) % Alignment
		hlen := dictLen + pad + 1

		limit := int64(MaxHeaderLenV1)
		if v != V1 {
			limit = MaxHeaderLenV2
		}
		if int64(hlen) <= limit {
			return v, pad, nil
		}
	}

	return Version{}, 0, fmt.Errorf("%w: %d bytes", errs.ErrHeaderTooLarge, dictLen)
}

// Size returns the total preamble length in bytes.
func (h *Header) Size() (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}

	dictLen := len(h.Dict())
	v, pad, err := layout(dictLen)
	if err != nil {
		return 0, err
	}

	return MagicSize + VersionSize + v.lengthSize() + dictLen + pad + 1, nil
}

// Bytes serializes the preamble: magic, version, little-endian header length,
// and the header dictionary padded with spaces and terminated by '\n'.
func (h *Header) Bytes() ([]byte, error) {
	return h.AppendTo(nil)
}

// AppendTo appends the serialized preamble to dst.
func (h *Header) AppendTo(dst []byte) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return dst, err
	}

	dict := h.Dict()
	v, pad, err := layout(len(dict))
	if err != nil {
		return dst, err
	}

	engine := endian.GetLittleEndianEngine()
	hlen := len(dict) + pad + 1

	dst = append(dst, Magic[:]...)
	dst = append(dst, v.Major, v.Minor)
	if v == V1 {
		dst = engine.AppendUint16(dst, uint16(hlen))
	} else {
		dst = engine.AppendUint32(dst, uint32(hlen))
	}
	dst = append(dst, dict...)
	dst = append(dst, bytes.Repeat([]byte{' '}, pad)...)
	dst = append(dst, '\n')

	return dst, nil
}

// WriteTo writes the serialized preamble to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	b, err := h.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(b)

	return int64(n), err
}

// ReadHeader reads and parses an NPY preamble from r, leaving r positioned at
// the first data byte. Versions 1.0, 2.0 and 3.0 are accepted.
func ReadHeader(r io.Reader) (*Header, error) {
	var prefix [MagicSize + VersionSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}
	if !bytes.Equal(prefix[:MagicSize], Magic[:]) {
		return nil, errs.ErrInvalidMagic
	}

	v := Version{Major: prefix[6], Minor: prefix[7]}
	if v != V1 && v != V2 && v != V3 {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedVersion, v)
	}

	engine := endian.GetLittleEndianEngine()
	lenBuf := make([]byte, v.lengthSize())
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}

	var hlen int
	if v == V1 {
		hlen = int(engine.Uint16(lenBuf))
	} else {
		hlen = int(engine.Uint32(lenBuf))
	}
	if hlen > maxHeaderRead {
		return nil, fmt.Errorf("%w: header length %d", errs.ErrInvalidHeader, hlen)
	}

	dict := make([]byte, hlen)
	if _, err := io.ReadFull(r, dict); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}

	h, err := parseDict(string(dict))
	if err != nil {
		return nil, err
	}
	h.Version = v

	return h, nil
}
