package request

import "fmt"

type lineStatus int

const (
	lineOK lineStatus = iota
	lineBad
	lineOpen
)

const (
	cr = '\r'
	lf = '\n'
)

// Buffer is the fixed-capacity region a connection reads its request head into.
// Bytes below Len are never written again until Reset.
type Buffer struct {
	data      []byte
	valid     int
	scanned   int
	lineStart int
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		data: make([]byte, capacity),
	}
}

// Free is the append point: the writable region past the valid bytes.
func (b *Buffer) Free() []byte {
	return b.data[b.valid:]
}

// Commit marks n more bytes of Free as valid.
func (b *Buffer) Commit(n int) error {
	if n < 0 || n > len(b.data)-b.valid {
		return fmt.Errorf("commit %d bytes with %d free", n, len(b.data)-b.valid)
	}
	b.valid += n
	return nil
}

func (b *Buffer) Len() int     { return b.valid }
func (b *Buffer) Cap() int     { return len(b.data) }
func (b *Buffer) Scanned() int { return b.scanned }
func (b *Buffer) Full() bool   { return b.valid == len(b.data) }

// Bytes returns the valid bytes.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.valid]
}

func (b *Buffer) Reset() {
	b.valid = 0
	b.scanned = 0
	b.lineStart = 0
}

// nextLine scans forward from the last examined byte for a line terminator. On lineOK
// the returned line is the content between line start and the terminator.
// A CR that is the last valid byte is left unscanned: its LF may be in the next read.
func (b *Buffer) nextLine() ([]byte, lineStatus) {
	for ; b.scanned < b.valid; b.scanned++ {
		switch b.data[b.scanned] {
		case cr:
			if b.scanned+1 == b.valid {
				return nil, lineOpen
			}
			if b.data[b.scanned+1] != lf {
				return nil, lineBad
			}
			line := b.data[b.lineStart:b.scanned:b.scanned]
			b.scanned += 2
			b.lineStart = b.scanned
			return line, lineOK
		case lf:
			line := b.data[b.lineStart:b.scanned:b.scanned]
			b.scanned++
			b.lineStart = b.scanned
			return line, lineOK
		}
	}

	return nil, lineOpen
}
