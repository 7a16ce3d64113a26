package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	pkgerrors "picklist/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSVTable reads a delimited-text export into a RawTable. The bytes are
// decoded as UTF-8 first; if they are not valid UTF-8 the region-specific
// fallback encoding (Shift-JIS) is attempted. Rows may be ragged; the
// reshaper treats missing trailing cells as empty.
func ReadCSVTable(path string) (RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecodeFailure, "failed to read input file", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDecodeFailure, "input is neither UTF-8 nor Shift-JIS", err)
		}
		// The decoder substitutes U+FFFD for byte sequences outside the
		// encoding instead of failing. U+FFFD is not representable in
		// Shift-JIS, so any occurrence marks undecodable input.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return nil, pkgerrors.New(pkgerrors.CodeDecodeFailure, "input is neither UTF-8 nor Shift-JIS")
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecodeFailure, "failed to parse delimited input", err)
	}

	return RawTable(rows), nil
}
