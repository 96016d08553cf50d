// Package fastfs implements the FastFS wire encoding: Borsh-style frames
// carrying file content to a data-sink account, the chunk planner that
// splits oversized content into bounded units, and the content addressing
// scheme used to derive storage keys and access URLs.
package fastfs

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fastnear/near-outlayer/internal/common"
)

// Frame tags. The first byte of every encoded frame selects the variant.
const (
	tagSimple  = 0
	tagPartial = 1
)

// SimpleFile is the single-shot framing variant: the whole content in one
// frame. Used only for small content and backward-compatible callers.
type SimpleFile struct {
	RelativePath string
	MimeType     string
	Content      []byte
}

// PartialFile is the chunked framing variant. Offset is the cumulative byte
// position within the full content at which this chunk begins; Nonce
// correlates all chunks of one upload session for the downstream indexer.
type PartialFile struct {
	RelativePath string
	Offset       uint32
	FullSize     uint32
	MimeType     string
	Content      []byte
	Nonce        uint32
}

// Frame is a decoded wire frame. Exactly one of the fields is set.
type Frame struct {
	Simple  *SimpleFile
	Partial *PartialFile
}

func appendString(dst []byte, s string) ([]byte, error) {
	if uint64(len(s)) > math.MaxUint32 {
		return nil, fmt.Errorf("string of %d bytes: %w", len(s), common.ErrLengthOverflow)
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...), nil
}

func appendBytes(dst []byte, b []byte) ([]byte, error) {
	if uint64(len(b)) > math.MaxUint32 {
		return nil, fmt.Errorf("blob of %d bytes: %w", len(b), common.ErrLengthOverflow)
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(b)))
	return append(dst, b...), nil
}

// EncodeSimple serializes a single-shot frame: tag 0, relative path, a flag
// byte marking the content as present, mime type, content.
func EncodeSimple(f *SimpleFile) ([]byte, error) {
	out := make([]byte, 0, len(f.Content)+len(f.RelativePath)+len(f.MimeType)+16)
	out = append(out, tagSimple)
	out, err := appendString(out, f.RelativePath)
	if err != nil {
		return nil, err
	}
	out = append(out, 1)
	out, err = appendString(out, f.MimeType)
	if err != nil {
		return nil, err
	}
	return appendBytes(out, f.Content)
}

// EncodePartial serializes a chunk frame: tag 1, relative path, offset,
// full size, mime type, chunk content, session nonce.
func EncodePartial(f *PartialFile) ([]byte, error) {
	out := make([]byte, 0, len(f.Content)+len(f.RelativePath)+len(f.MimeType)+24)
	out = append(out, tagPartial)
	out, err := appendString(out, f.RelativePath)
	if err != nil {
		return nil, err
	}
	out = binary.LittleEndian.AppendUint32(out, f.Offset)
	out = binary.LittleEndian.AppendUint32(out, f.FullSize)
	out, err = appendString(out, f.MimeType)
	if err != nil {
		return nil, err
	}
	out, err = appendBytes(out, f.Content)
	if err != nil {
		return nil, err
	}
	return binary.LittleEndian.AppendUint32(out, f.Nonce), nil
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) u8() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, common.ErrTruncatedFrame
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, common.ErrTruncatedFrame
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.buf) {
		return nil, common.ErrTruncatedFrame
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *reader) string() (string, error) {
	b, err := r.bytes()
	return string(b), err
}

// DecodeFrame parses an encoded frame. The first byte unambiguously selects
// the variant; any bytes left over after the frame are an error.
func DecodeFrame(data []byte) (*Frame, error) {
	r := &reader{buf: data}

	tag, err := r.u8()
	if err != nil {
		return nil, err
	}

	var frame Frame
	switch tag {
	case tagSimple:
		f := &SimpleFile{}
		if f.RelativePath, err = r.string(); err != nil {
			return nil, err
		}
		flag, err := r.u8()
		if err != nil {
			return nil, err
		}
		if f.MimeType, err = r.string(); err != nil {
			return nil, err
		}
		if flag != 0 {
			content, err := r.bytes()
			if err != nil {
				return nil, err
			}
			f.Content = content
		}
		frame.Simple = f
	case tagPartial:
		f := &PartialFile{}
		if f.RelativePath, err = r.string(); err != nil {
			return nil, err
		}
		if f.Offset, err = r.u32(); err != nil {
			return nil, err
		}
		if f.FullSize, err = r.u32(); err != nil {
			return nil, err
		}
		if f.MimeType, err = r.string(); err != nil {
			return nil, err
		}
		if f.Content, err = r.bytes(); err != nil {
			return nil, err
		}
		if f.Nonce, err = r.u32(); err != nil {
			return nil, err
		}
		frame.Partial = f
	default:
		return nil, fmt.Errorf("tag %d: %w", tag, common.ErrUnknownFrameTag)
	}

	if r.pos != len(data) {
		return nil, common.ErrTrailingBytes
	}
	return &frame, nil
}
