package sheet

import (
	"fmt"

	"github.com/couchcryptid/store-directory/internal/config"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// decode converts source bytes to UTF-8. Excel on Japanese Windows saves CSV
// as Shift_JIS (CP932).
func decode(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "", config.EncodingUTF8:
		return data, nil
	case config.EncodingShiftJIS:
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode shift_jis: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
