// Package models defines the records exchanged with the message service.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidID is returned when an id cannot be decoded or is empty.
var ErrInvalidID = errors.New("invalid message id")

// ID is an opaque, server-assigned message identifier.
// The service may send it as a JSON string or a JSON number.
type ID string

// String returns the textual form used in URLs and logs.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// ParseID converts user input into an ID.
func ParseID(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	return ID(trimmed), nil
}

// MarshalJSON encodes canonical integer ids as numbers and everything else
// as strings, so "007" and "+7" stay strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if isCanonicalInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a string or a number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(data))
	}
	*id = ID(n.String())
	return nil
}

func isCanonicalInteger(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == s
}

// Timestamp is a creation time. The service sends epoch milliseconds;
// RFC 3339 strings are accepted as well.
type Timestamp struct {
	time.Time
}

// UnixMilliTimestamp builds a Timestamp from epoch milliseconds.
func UnixMilliTimestamp(ms int64) Timestamp {
	return Timestamp{Time: time.UnixMilli(ms).UTC()}
}

// Before reports whether t sorts before other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.Time.Before(other.Time)
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// UnmarshalJSON accepts epoch milliseconds or an RFC 3339 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid created_at %q: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid created_at %s: %w", string(data), err)
	}
	ms, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("invalid created_at %s: %w", string(data), err)
		}
		if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return fmt.Errorf("invalid created_at %s: out of range", string(data))
		}
		ms = int64(f)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Message is a chat record owned by the remote service.
type Message struct {
	ID        ID        `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// CreateRequest is the body of POST /messages.
type CreateRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// UpdateRequest is the body of PUT /messages/{id}.
type UpdateRequest struct {
	Content string `json:"content"`
}

// Validate checks the fields a server record must carry.
// Content and username may legitimately be empty.
func (m Message) Validate() error {
	validation := &ValidationErrors{}
	if m.ID.IsZero() {
		validation.Add("id", ErrInvalidID)
	}
	return validation.Err()
}
