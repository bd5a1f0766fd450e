package prscalc

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
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
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType inspects the first bytes of a buffered stream without
// consuming them. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return DataTypeInvalid, err
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	if isZlibHeader(buff) {
		return DataTypeZlib, nil
	}

	return DataTypeNoCompression, nil
}

// isZlibHeader reports whether b opens with an RFC 1950 header: deflate
// with a window of at most 32K, no preset dictionary, and a valid FCHECK.
// This covers 78 01, 78 5e, 78 9c and 78 da, which differ only in FLEVEL.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	if cmf&0x0f != 8 || cmf>>4 > 7 || flg&0x20 != 0 {
		return false
	}

	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// MaybeDecompress wraps rc in the decompressor matching its magic bytes.
// Closing the returned ReadCloser also closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var r io.Reader
	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &multiCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case DataTypeZip:
		// Only the first member of the archive is read
		zs := zipstream.NewReader(br)
		if _, err := zs.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		r = zs
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		r = xr
	default:
		r = br
	}

	return &multiCloser{Reader: r, closers: []io.Closer{rc}}, nil
}

// multiCloser closes every underlying closer in order and reports the first
// error.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *multiCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
