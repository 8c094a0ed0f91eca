package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// readJSON collects every string leaf in document order. Object keys, numbers,
// booleans and nulls are not emitted. A file may hold several top-level values
// (JSON Lines).
func readJSON(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open JSON: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var values []string
	for {
		err := collectJSONStrings(dec, &values)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	}
	return values, nil
}

// collectJSONStrings consumes exactly one value from dec.
func collectJSONStrings(dec *json.Decoder, out *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case string:
		*out = append(*out, v)
	case json.Delim:
		switch v {
		case '{':
			for dec.More() {
				// key
				if _, err := dec.Token(); err != nil {
					return unexpectedEOF(err)
				}
				if err := collectJSONStrings(dec, out); err != nil {
					return unexpectedEOF(err)
				}
			}
			_, err = dec.Token()
			return unexpectedEOF(err)
		case '[':
			for dec.More() {
				if err := collectJSONStrings(dec, out); err != nil {
					return unexpectedEOF(err)
				}
			}
			_, err = dec.Token()
			return unexpectedEOF(err)
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
	}
	return nil
}

// unexpectedEOF turns io.EOF inside a value into io.ErrUnexpectedEOF so that a
// truncated document is not mistaken for the end of the stream.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
