package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessageDecodesNumericFields(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"username":"alice","content":"hi","created_at":1000}`), &msg))

	require.Equal(t, ID("7"), msg.ID)
	require.Equal(t, "alice", msg.Username)
	require.Equal(t, "hi", msg.Content)
	require.Equal(t, int64(1000), msg.CreatedAt.UnixMilli())
}

func TestMessageDecodesStringFields(t *testing.T) {
	var msg Message
	payload := `{"id":"b3c1","username":"bob","content":"yo","created_at":"2026-02-09T08:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &msg))

	require.Equal(t, ID("b3c1"), msg.ID)
	require.True(t, msg.CreatedAt.Equal(time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)))
}

func TestMessageEncodesIDAsWritten(t *testing.T) {
	out, err := json.Marshal(Message{ID: "7", Username: "alice", Content: "hi", CreatedAt: UnixMilliTimestamp(1000)})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":7,"username":"alice","content":"hi","created_at":1000}`, string(out))

	out, err = json.Marshal(Message{ID: "b3c1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"b3c1","username":"","content":"","created_at":null}`, string(out))
}

func TestIDKeepsNonCanonicalIntegersQuoted(t *testing.T) {
	cases := []struct {
		payload string
		want    string
	}{
		{payload: `"007"`, want: `"007"`},
		{payload: `"+7"`, want: `"+7"`},
		{payload: `"-0"`, want: `"-0"`},
		{payload: `"7"`, want: `7`},
		{payload: `7`, want: `7`},
		{payload: `"99999999999999999999"`, want: `"99999999999999999999"`},
	}
	for _, tc := range cases {
		var msg Message
		require.NoError(t, json.Unmarshal([]byte(`{"id":`+tc.payload+`,"username":"a","content":"b","created_at":1}`), &msg), tc.payload)

		out, err := json.Marshal(msg)
		require.NoError(t, err, tc.payload)
		require.JSONEq(t, `{"id":`+tc.want+`,"username":"a","content":"b","created_at":1}`, string(out), tc.payload)
	}
}

func TestListOfOpaqueIDsEncodes(t *testing.T) {
	out, err := json.Marshal([]Message{{ID: "007"}, {ID: "+7"}, {ID: "8"}})
	require.NoError(t, err)

	var back []Message
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, []ID{"007", "+7", "8"}, []ID{back[0].ID, back[1].ID, back[2].ID})
}

func TestTimestampRejectsOutOfRangeFloat(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`1e30`), &ts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")

	err = json.Unmarshal([]byte(`-1e30`), &ts)
	require.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`1500.9`), &ts))
	require.Equal(t, int64(1500), ts.UnixMilli())
}

func TestIDRejectsGarbage(t *testing.T) {
	var id ID
	err := json.Unmarshal([]byte(`{"nested":true}`), &id)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidID))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("  42 ")
	require.NoError(t, err)
	require.Equal(t, ID("42"), id)

	_, err = ParseID("   ")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestMessageValidateRequiresID(t *testing.T) {
	require.NoError(t, Message{ID: "1"}.Validate())
	err := Message{Username: "alice"}.Validate()
	require.ErrorIs(t, err, ErrInvalidID)
}
