// Package encoding normalizes CSV input to UTF-8. Bank exports from
// French-speaking institutions commonly arrive as ISO-8859-1/15 or
// Windows-1252; detection is heuristic with a Latin fallback.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ToUTF8 wraps r in a reader that yields UTF-8.
//
// Detection order: BOM, UTF-8 validation, chardet heuristic, Windows-1252
// fallback (a superset of ISO-8859-1 covering every byte value).
func ToUTF8(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if dec, consumed := bomDecoder(head); dec != nil || consumed > 0 {
		_, _ = br.Discard(consumed)
		if dec == nil {
			return br, nil
		}

		return transform.NewReader(br, dec.NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, detectDecoder(head).NewDecoder()), nil
}

// bomDecoder inspects a byte-order mark. A nil encoding with consumed > 0
// means "UTF-8 BOM, strip it and pass through".
func bomDecoder(head []byte) (encoding.Encoding, int) {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		return nil, len(bomUTF8)
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), 0
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), 0
	}

	return nil, 0
}

func detectDecoder(head []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	default:
		return charmap.Windows1252
	}
}
