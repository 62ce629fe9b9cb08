package encoding

import (
	"bytes"
	"errors"
	"io"

	"github.com/arloliu/npyz/internal/pool"
)

// ReadPayload reads exactly size payload bytes from r.
//
// It returns io.ErrUnexpectedEOF if r ends before size bytes were read.
func ReadPayload(r io.Reader, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, min(size, pool.EntryBufferDefaultSize)))
	n, err := io.CopyN(buf, r, int64(size))
	if err != nil {
		if errors.Is(err, io.EOF) && n < int64(size) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	return buf.Bytes(), nil
}
