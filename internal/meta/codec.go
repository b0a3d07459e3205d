package meta

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"
)

// envelope wraps persisted progress with an integrity checksum. The checksum
// covers the raw data bytes exactly as stored, so data survives round trips
// through any store that preserves the string.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Checksum  string          `json:"checksum"`
	Timestamp int64           `json:"timestamp"`
}

func checksum(b []byte) string {
	h := fnv.New32a()
	h.Write(b)
	return fmt.Sprintf("%08x", h.Sum32())
}

// encode serializes v inside a checksummed envelope.
func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("meta: encode: %w", err)
	}
	env := envelope{
		Data:      raw,
		Checksum:  checksum(raw),
		Timestamp: time.Now().UnixMilli(),
	}
	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("meta: encode envelope: %w", err)
	}
	return string(out), nil
}

// decode unwraps an envelope into v. A checksum mismatch means the payload
// was tampered with or truncated; the caller discards it and starts fresh.
func decode(s string, v any) error {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return fmt.Errorf("meta: decode envelope: %w", err)
	}
	if got := checksum(env.Data); got != env.Checksum {
		return fmt.Errorf("meta: checksum mismatch: stored %s, computed %s", env.Checksum, got)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("meta: decode data: %w", err)
	}
	return nil
}
