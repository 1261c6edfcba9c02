package extract

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText decodes plain text permissively. A UTF-16 byte-order mark switches
// the decoder; a UTF-8 one is dropped; invalid sequences become U+FFFD.
func decodeText(data []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}
