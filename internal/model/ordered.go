package model

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// The snapshot's series are JSON objects whose key order carries meaning
// (years are listed chronologically by the pipeline). Go maps drop that
// order, so objects are decoded token by token into ordered slices.

var jsonNull = []byte("null")

type Entry struct {
	Key   string
	Value float64
}

type Numbers []Entry

func (n Numbers) Get(key string) (float64, bool) {
	for _, e := range n {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

func (n Numbers) Keys() []string {
	keys := make([]string, len(n))
	for i, e := range n {
		keys[i] = e.Key
	}
	return keys
}

func (n *Numbers) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	out, err := readNumbers(newTokenizer(data))
	if err != nil {
		return err
	}
	*n = out
	return nil
}

type Row struct {
	Key    string
	Values Numbers
}

type NumberTable []Row

func (t NumberTable) Get(key string) (Numbers, bool) {
	for _, r := range t {
		if r.Key == key {
			return r.Values, true
		}
	}
	return nil, false
}

func (t *NumberTable) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	dec := newTokenizer(data)
	if err := openObject(dec); err != nil {
		return err
	}
	out := NumberTable{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		values, err := readNumbers(dec)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, Row{Key: key, Values: values})
	}
	if err := closeObject(dec); err != nil {
		return err
	}
	*t = out
	return nil
}

// Record is one health condition category: an optional display name plus
// numeric projections keyed by year. Other fields are ignored.
type Record struct {
	Key    string
	Name   string
	Values Numbers
}

type RecordTable []Record

func (t *RecordTable) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	dec := newTokenizer(data)
	if err := openObject(dec); err != nil {
		return err
	}
	out := RecordTable{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		r, err := readRecord(dec)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		r.Key = key
		out = append(out, r)
	}
	if err := closeObject(dec); err != nil {
		return err
	}
	*t = out
	return nil
}

func readRecord(dec *json.Decoder) (Record, error) {
	var r Record
	if err := openObject(dec); err != nil {
		return r, err
	}
	r.Values = Numbers{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return r, err
		}
		tok, err := dec.Token()
		if err != nil {
			return r, err
		}
		switch v := tok.(type) {
		case float64:
			r.Values = append(r.Values, Entry{Key: key, Value: v})
		case string:
			if key == "name" {
				r.Name = v
			}
		default:
			if err := skipFrom(dec, tok); err != nil {
				return r, err
			}
		}
	}
	return r, closeObject(dec)
}

func newTokenizer(data []byte) *json.Decoder {
	return json.NewDecoder(bytes.NewReader(data))
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), jsonNull)
}

func readNumbers(dec *json.Decoder) (Numbers, error) {
	if err := openObject(dec); err != nil {
		return nil, err
	}
	out := Numbers{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, ok := tok.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: expected number, got %v", key, tok)
		}
		out = append(out, Entry{Key: key, Value: v})
	}
	return out, closeObject(dec)
}

func openObject(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	return nil
}

func closeObject(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '}' {
		return fmt.Errorf("expected end of object, got %v", tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// skipFrom discards the rest of a value whose first token was tok.
func skipFrom(dec *json.Decoder, tok json.Token) error {
	depth := 0
	for {
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
		var err error
		tok, err = dec.Token()
		if err != nil {
			return err
		}
	}
}
