package web

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
)

// encoder turns frames into messages, skipping frames identical to
// the last one sent and repeating cached frames by index.
type encoder struct {
	compression bool
	quality     int

	cache   *cache
	last    uint64
	sent    bool
	skipped uint32
}

func newEncoder(compression bool, quality, cacheSize int) *encoder {
	return &encoder{
		compression: compression,
		quality:     quality,
		cache:       newCache(cacheSize),
	}
}

// compress returns frame as it is sent on the wire.
func (e *encoder) compress(frame []byte) ([]byte, error) {
	if !e.compression {
		return frame, nil
	}
	b, err := cbrotli.Encode(frame, cbrotli.WriterOptions{Quality: e.quality})
	if err != nil {
		return nil, fmt.Errorf("web: compressing frame: %w", err)
	}
	return b, nil
}

// encode returns the messages to broadcast for frame, if any.
func (e *encoder) encode(frame []byte) ([][]byte, error) {
	hash := xxhash.Sum64(frame)
	if e.sent && hash == e.last {
		e.skipped++
		return nil, nil
	}

	var msgs [][]byte
	if e.skipped > 0 {
		msgs = append(msgs, binary.LittleEndian.AppendUint32([]byte{FrameSkip}, e.skipped))
		e.skipped = 0
	}

	if i := e.cache.index(hash); i != -1 {
		msgs = append(msgs, binary.LittleEndian.AppendUint16([]byte{FrameCache}, uint16(i)))
	} else {
		data, err := e.compress(frame)
		if err != nil {
			return nil, err
		}
		i := e.cache.add(hash, data)
		msg := binary.LittleEndian.AppendUint16([]byte{Frame}, uint16(i))
		msgs = append(msgs, append(msg, data...))
	}

	e.last, e.sent = hash, true
	return msgs, nil
}
