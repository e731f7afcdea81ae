// Package wire implements a compact binary encoding for RleBitmap run
// sequences, distinct from the in-memory representation: a 2-bit version
// tag followed by a varint run count and then each run's length, using a
// prefix code that spends a single bit on the common case of a
// length-1 run, 6 bits on any run shorter than 16, and a 2-bit tag plus
// an LEB128 varint otherwise. Varint bytes are written as 8-bit groups at
// the current bit offset, not padded to a byte boundary. It is an optional companion for callers that
// want to store or transmit an RleBitmap compactly; it has no bearing on
// Or/And/Xor/Not, which operate on the in-memory run slice directly.
package wire

import (
	"encoding/binary"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/bitrun"
)

var log = logging.Logger("bitrun/wire")

// Version is the only wire format version this package knows how to
// write or read.
const Version = 0

var (
	// ErrWrongVersion is returned when decoding a buffer whose version
	// tag doesn't match Version.
	ErrWrongVersion = xerrors.New("bitrun/wire: unsupported encoding version")
	// ErrDecode is returned when a buffer is truncated or otherwise
	// malformed partway through decoding.
	ErrDecode = xerrors.New("bitrun/wire: malformed encoding")
)

// Encode serializes b into a compact byte slice.
func Encode(b bitrun.RleBitmap) []byte {
	w := newWriteBits(nil)
	w.Put(Version, 2)
	putUvarint(w, uint64(len(b)))
	for _, r := range b {
		putRunLength(w, r)
	}
	return w.Bytes()
}

// Decode parses a buffer produced by Encode back into an RleBitmap.
func Decode(buf []byte) (bitrun.RleBitmap, error) {
	if len(buf) == 0 {
		return nil, nil
	}

	r := newReadBits(buf)
	if ver := r.Get(2); ver != Version {
		log.Warnw("decode failed", "error", ErrWrongVersion, "version", ver)
		return nil, ErrWrongVersion
	}

	n, err := getUvarint(r)
	if err == nil && r.pos > uint64(len(buf))*8 {
		err = ErrDecode
	}
	if err != nil {
		log.Warnw("decode failed", "error", err, "stage", "run count")
		return nil, err
	}

	out := make(bitrun.RleBitmap, n)
	for i := range out {
		run, err := getRunLength(r)
		if err == nil && r.pos > uint64(len(buf))*8 {
			err = ErrDecode
		}
		if err != nil {
			log.Warnw("decode failed", "error", err, "stage", "run length", "index", i)
			return nil, err
		}
		out[i] = run
	}
	return out, nil
}

// putRunLength writes a single run length using a prefix code: '1' for
// length 1, '01' followed by a 4-bit value for lengths under 16, '00'
// followed by a varint (8-bit groups, unaligned) otherwise.
func putRunLength(w *writeBits, n uint64) {
	switch {
	case n == 1:
		w.Put(1, 1)
	case n < 16:
		w.Put(2, 2)
		w.Put(byte(n), 4)
	default:
		w.Put(0, 2)
		putUvarint(w, n)
	}
}

func getRunLength(r *readBits) (uint64, error) {
	switch r.Get(1) {
	case 1:
		return 1, nil
	default:
		switch r.Get(1) {
		case 1:
			return uint64(r.Get(4)), nil
		default:
			return getUvarint(r)
		}
	}
}

func putUvarint(w *writeBits, v uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	for i := 0; i < n; i++ {
		w.Put(buf[i], 8)
	}
}

func getUvarint(r *readBits) (uint64, error) {
	var buf []byte
	for {
		b := r.Get(8)
		buf = append(buf, b)
		if b&0x80 == 0 {
			break
		}
		if len(buf) > binary.MaxVarintLen64 {
			return 0, ErrDecode
		}
	}
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, ErrDecode
	}
	return v, nil
}
