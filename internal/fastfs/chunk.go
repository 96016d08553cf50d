package fastfs

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/fastnear/near-outlayer/internal/common"
)

// DefaultMaxChunkSize keeps each transaction payload comfortably under the
// network's per-transaction ceiling.
const DefaultMaxChunkSize = 1 << 20 // 1 MiB

// nonceEpochOffset is subtracted from the wall clock in the legacy nonce
// derivation to keep values small. Wire-compatible with existing uploads.
const nonceEpochOffset = 1769376240

// Chunk is a bounded slice of the full content, tagged with the byte offset
// at which it begins.
type Chunk struct {
	Offset uint32
	Bytes  []byte
}

// Plan is the ordered, gap-free partition of one upload's content. All
// chunks share the session nonce.
type Plan struct {
	Chunks   []Chunk
	FullSize uint32
	Nonce    uint32
}

// NewNonce returns a random 32-bit session nonce. Wall-clock derivation is
// kept as a fallback for the unlikely case that the system RNG fails; it
// gives weaker uniqueness under rapid repeated invocation.
func NewNonce() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint32(time.Now().Unix() - nonceEpochOffset)
	}
	return binary.LittleEndian.Uint32(b[:])
}

// PlanChunks partitions content into chunks of at most maxChunkSize bytes,
// in ascending offset order with no gaps or overlaps. Empty content yields
// exactly one zero-length chunk so the indexer still observes a record.
// Content larger than 4 GiB cannot be represented in a u32 full size.
func PlanChunks(content []byte, maxChunkSize int, nonce uint32) (*Plan, error) {
	if maxChunkSize < 1 {
		return nil, common.ErrInvalidChunkSize
	}
	if uint64(len(content)) > math.MaxUint32 {
		return nil, fmt.Errorf("content of %d bytes: %w", len(content), common.ErrContentTooLarge)
	}

	fullSize := uint32(len(content))
	plan := &Plan{FullSize: fullSize, Nonce: nonce}

	if fullSize == 0 {
		plan.Chunks = []Chunk{{Offset: 0, Bytes: nil}}
		return plan, nil
	}

	for offset := 0; offset < len(content); offset += maxChunkSize {
		end := offset + maxChunkSize
		if end > len(content) {
			end = len(content)
		}
		plan.Chunks = append(plan.Chunks, Chunk{
			Offset: uint32(offset),
			Bytes:  content[offset:end],
		})
	}
	return plan, nil
}
