// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

/*
TestDetect covers each detection outcome.
*/
func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    charset.Charset
		wantErr bool
	}{
		{"ascii", []byte(`(a (name "Plain"))`), charset.Latin1, false},
		{"utf8", []byte(`(a (name "Beyoncé"))`), charset.UTF8, false},
		{"utf8_bom", append([]byte{0xEF, 0xBB, 0xBF}, `(a)`...), charset.UTF8, false},
		{"latin1", []byte{'(', 'a', ' ', 0xE9, ')'}, charset.Latin1, false},
		{"utf16", []byte{0xFF, 0xFE, '(', 0}, "", true},
		{"binary", []byte{'(', 0, ')'}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := charset.Detect(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, dtaerr.ErrEncodingFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestLatin1_RoundTrip converts accented text both ways.
*/
func TestLatin1_RoundTrip(t *testing.T) {
	encoded, err := charset.Encode("Café", charset.Latin1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'a', 'f', 0xE9}, encoded)

	text, cs, err := charset.DetectAndDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, charset.Latin1, cs)
	assert.Equal(t, "Café", text)
}

/*
TestEncode_OutOfRange rejects characters Latin-1 cannot hold.
*/
func TestEncode_OutOfRange(t *testing.T) {
	_, err := charset.Encode("東京", charset.Latin1)
	require.Error(t, err)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)

	encoded, err := charset.Encode("東京", charset.UTF8)
	require.NoError(t, err)
	assert.Equal(t, "東京", string(encoded))
}

/*
TestParse accepts common spellings.
*/
func TestParse(t *testing.T) {
	cs, ok := charset.Parse("UTF-8")
	assert.True(t, ok)
	assert.Equal(t, charset.UTF8, cs)

	_, ok = charset.Parse("shift_jis")
	assert.False(t, ok)
}
