package nanoqc

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZlib:  {0x78, 0x9c},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType matches the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the start of rc and wraps it in the
// matching decompressor. Closing the result closes rc. Streams that are not
// seekable, such as Google Storage readers, are supported because nothing is
// consumed from rc during detection.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// Short files are fine, Peek returns what it has along with io.EOF.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		// Only the first entry of a zip archive is read.
		zr := zipstream.NewReader(br)
		if _, err = zr.Next(); err == nil {
			r = zr
		}
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(br)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		r = br
	}
	if err != nil {
		return nil, err
	}

	return &chainedCloser{Reader: r, closer: rc}, nil
}

// chainedCloser reads from a (possibly decompressing) reader and closes the
// underlying source.
type chainedCloser struct {
	io.Reader
	closer io.Closer
}

func (c *chainedCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		rc.Close()
	}

	return c.closer.Close()
}
