package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LineupHash returns a hex SHA-256 of the payload in canonical form: object keys
// sorted and insignificant whitespace dropped, so equal content hashes equally
func LineupHash(payload json.RawMessage) (string, error) {
	canonical, err := canonicalJSON(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalJSON(payload json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode lineup payload: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode lineup payload: trailing data")
	}
	switch v.(type) {
	case map[string]any, []any:
	default:
		return nil, fmt.Errorf("decode lineup payload: expected object or array")
	}

	// encoding/json пишет ключи map в отсортированном порядке
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode lineup payload: %w", err)
	}
	return out, nil
}
