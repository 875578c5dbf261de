// Package zlibutil adapts github.com/klauspost/compress/zlib, a
// drop-in replacement for compress/zlib, to the two shapes the rest of
// the module needs: whole-buffer compress/decompress for the object
// store, and a streaming inflate that reports exactly how many input
// bytes it consumed, for the pack decoder (where a zlib stream's
// compressed length isn't known ahead of time and must be learned from
// the decompressor itself).
package zlibutil

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// ErrShortInflate is returned by Inflate when the decompressed stream
// is shorter than the declared size.
var ErrShortInflate = errors.New("zlibutil: decompressed stream shorter than declared size")

// Compress returns the zlib-compressed form of data at the default
// compression level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "zlib compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "zlib compress")
	}
	return buf.Bytes(), nil
}

// Decompress inflates a complete zlib stream.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "zlib decompress")
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "zlib decompress")
	}
	return out, nil
}

// countingReader tracks how many bytes have been read from an
// underlying reader, so that a streaming inflate can report its exact
// input footprint.
type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	var p [1]byte
	n, err := c.r.Read(p[:])
	c.n += int64(n)
	if err != nil {
		c.err = err
		return 0, err
	}
	return p[0], nil
}

// Inflate decompresses one zlib stream of the declared uncompressed
// size starting at the head of data. It returns the decompressed
// bytes and the number of input bytes the zlib stream actually
// occupied, so the caller can advance its own cursor past it. Unlike
// Decompress, it does not require data to hold exactly one stream:
// trailing bytes belonging to whatever comes next in the pack are
// left untouched.
func Inflate(data []byte, size int64) (out []byte, consumed int64, err error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	zr, err := zlib.NewReader(cr)
	if err != nil {
		return nil, 0, errors.Wrap(err, "zlib inflate")
	}
	defer zr.Close()
	out = make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, 0, ErrShortInflate
		}
		return nil, 0, errors.Wrap(err, "zlib inflate")
	}
	// Reading exactly `size` bytes from zr does not necessarily
	// drain the underlying zlib stream's trailing checksum; one more
	// one-byte read forces the reader to consume it, which is what
	// advances cr.n to the stream's true end.
	var probe [1]byte
	if n, perr := zr.Read(probe[:]); n > 0 {
		return nil, 0, errors.New("zlib inflate: declared size shorter than stream")
	} else if perr != io.EOF && perr != nil {
		return nil, 0, errors.Wrap(perr, "zlib inflate")
	}
	return out, cr.n, nil
}
