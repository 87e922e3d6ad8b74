// Package encoding normalizes uploaded ledger files to UTF-8. Statement
// exports from accounting tools are a mix of UTF-8, UTF-16 and legacy
// Windows code pages, often with a BOM.
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

const sniffSize = 4096

// NewUTF8Reader wraps r in a reader that yields UTF-8, sniffing the source
// encoding from the first bytes. BOMs win; otherwise valid UTF-8 passes
// through, chardet guesses the legacy code page, and Windows-1252 is the
// last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
		return br, nil
	}

	if bytes.HasPrefix(head, []byte{0xFF, 0xFE}) {
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, []byte{0xFE, 0xFF}) {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if dec := sniffLegacy(head); dec != nil {
		return decode(br, dec), nil
	}

	return decode(br, charmap.Windows1252.NewDecoder()), nil
}

// sniffLegacy asks chardet for the most likely legacy code page. Only
// charsets we actually see in the wild are mapped; anything else falls back
// to the caller's default.
func sniffLegacy(head []byte) *encoding.Decoder {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	default:
		return nil
	}
}

func decode(r io.Reader, dec *encoding.Decoder) io.Reader {
	return transform.NewReader(r, dec)
}
