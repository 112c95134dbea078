package data

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Status string `json:"status"`
}

func TestDecodeOr(t *testing.T) {
	fallback := map[string]sample{}

	tests := []struct {
		name        string
		raw         []byte
		want        map[string]sample
		wantCorrupt bool
	}{
		{"absent", nil, fallback, false},
		{"empty", []byte{}, fallback, false},
		{"valid", []byte(`{"a":{"status":"Hired"}}`), map[string]sample{"a": {Status: "Hired"}}, false},
		{"truncated", []byte(`{"a":{"status"`), fallback, true},
		{"wrong shape", []byte(`[1,2,3]`), fallback, true},
		{"not json", []byte(`Hired`), fallback, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOr(tt.raw, JSON[map[string]sample], fallback)
			if tt.wantCorrupt {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCorruptValue)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOr_CustomDecoder(t *testing.T) {
	atoi := func(raw []byte) (int, error) { return strconv.Atoi(string(raw)) }

	got, err := DecodeOr([]byte("42"), atoi, -1)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = DecodeOr([]byte("x"), atoi, -1)
	assert.Equal(t, -1, got)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr), "cause is preserved")
}

func TestClientNamespace(t *testing.T) {
	ns, err := ClientNamespace(" 7b0c ")
	require.NoError(t, err)
	assert.Equal(t, "ctx:{7b0c}:", ns)

	_, err = ClientNamespace("")
	assert.ErrorIs(t, err, ErrClientIDRequired)

	_, err = ClientNamespace("a}b")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	ts := TimeFunc(func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("x", 3600)) })
	assert.Equal(t, "2024-03-01T08:30:00Z", FormatTimestamp(ts.Now()))
}
