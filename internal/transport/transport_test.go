package transport_test

import (
	"testing"

	"github.com/AndrewDonelson/cookiejar/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_ReservedSeparators(t *testing.T) {
	assert.Equal(t, "a%3Db", transport.Encode("a=b"))
	assert.Equal(t, "a%3Bb", transport.Encode("a;b"))
	assert.Equal(t, "a%2Cb", transport.Encode("a,b"))
	assert.Equal(t, "a%20b", transport.Encode("a b"))
	assert.Equal(t, "a%09b%0A", transport.Encode("a\tb\n"))
}

func TestEncode_AllowListStaysLiteral(t *testing.T) {
	// Object-shaped payloads keep their punctuation readable.
	assert.Equal(t, "{%22a%22:[1%2C2]}", transport.Encode(`{"a":[1,2]}`))
	assert.Equal(t, "[rot13n]Frperg678", transport.Encode("[rot13n]Frperg678"))
}

func TestEncode_UnreservedUntouched(t *testing.T) {
	s := "AZaz09-_.!~*'()"
	assert.Equal(t, s, transport.Encode(s))
}

func TestEncode_NonASCII(t *testing.T) {
	assert.Equal(t, "%C3%A4", transport.Encode("ä"))
}

func TestDecode_Inverse(t *testing.T) {
	got, err := transport.Decode("a%3Db%20c")
	require.NoError(t, err)
	assert.Equal(t, "a=b c", got)
}

func TestDecode_PlusIsLiteral(t *testing.T) {
	// Unlike form decoding, '+' is an ordinary character in the channel.
	got, err := transport.Decode("a%2Bb+c")
	require.NoError(t, err)
	assert.Equal(t, "a+b+c", got)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := transport.Decode("bad%Gsequence")
	assert.Error(t, err)
	_, err = transport.Decode("truncated%2")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	values := []string{
		"",
		"plain",
		"with spaces and = ; , separators",
		`{"first":"Joe","tags":[1,2,3]}`,
		"[rot13]uryyb",
		"unicode: äöü 日本語",
		"percent % literal %%",
	}
	for _, v := range values {
		got, err := transport.Decode(transport.Encode(v))
		require.NoError(t, err, "value %q", v)
		assert.Equal(t, v, got, "round-trip of %q", v)
	}
}
