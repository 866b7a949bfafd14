// =============================================================================
// HFM Metadata Compare - Code Page Handling
// =============================================================================
//
// HFM exports metadata in the legacy Windows code page. Files are decoded to
// UTF-8 on read; everything downstream works on Go strings.
//
// SUPPORTED ENCODINGS:
//   - "windows-1252" (aliases "cp1252", "1252")  : default
//   - "iso-8859-1"   (aliases "latin1", "latin-1")
//   - "utf-8"        (alias "utf8")              : validated, not transformed
//
// =============================================================================

package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned for encoding names this tool does not know.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// ErrInvalidUTF8 is returned when a file read as UTF-8 is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// LookupEncoding resolves an encoding name. A nil Encoding with a nil error
// means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "windows-1252", "cp1252", "1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "utf-8", "utf8":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// ErrUndefinedByte is returned when a windows-1252 file holds one of the
// five bytes the code page leaves undefined.
var ErrUndefinedByte = errors.New("byte undefined in windows-1252")

// ReadFile reads a metadata file and decodes it from the named encoding.
func ReadFile(path, encodingName string) (string, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open metadata file: %w", err)
	}

	switch enc {
	case nil:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
		}
		return string(data), nil
	case charmap.Windows1252:
		if err := checkWindows1252(data); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return string(decoded), nil
}

// checkWindows1252 rejects 0x81, 0x8D, 0x8F, 0x90 and 0x9D. The charmap
// decoder would turn each of them into U+FFFD, making distinct bytes equal.
func checkWindows1252(data []byte) error {
	line := 1
	for _, b := range data {
		switch b {
		case '\n':
			line++
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return fmt.Errorf("%w: 0x%02X on line %d", ErrUndefinedByte, b, line)
		}
	}
	return nil
}

// EncodeWriter wraps w so that UTF-8 written to it is encoded to the named
// code page. Close flushes the encoder; it does not close w.
func EncodeWriter(w io.Writer, encodingName string) (io.WriteCloser, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nopCloser{w}, nil
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
