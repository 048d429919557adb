package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscount_Unmarshal(t *testing.T) {
	cases := map[string]Discount{
		`15`:      15,
		`15.9`:    15,
		`"20"`:    20,
		`"20%"`:   20,
		`"abc"`:   0,
		`""`:      0,
		`-5`:      0,
		`null`:    0,
		`"1a2b3"`: 123,
	}
	for in, want := range cases {
		var d Discount
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.Equal(t, want, d, in)
	}
}

func TestParseDiscount(t *testing.T) {
	assert.Equal(t, Discount(0), ParseDiscount(""))
	assert.Equal(t, Discount(7), ParseDiscount(" 7 "))
	assert.Equal(t, "123", DigitsOnly("a1-2_3"))
}

func TestIsValidChannelID(t *testing.T) {
	assert.True(t, IsValidChannelID("1234567890123456789"))
	assert.False(t, IsValidChannelID("123456789012345678"))
	assert.False(t, IsValidChannelID("12345678901234567890"))
	assert.False(t, IsValidChannelID("123456789012345678a"))
	assert.False(t, IsValidChannelID("channel-1"))
}

func TestSanitizeChannelID(t *testing.T) {
	id, ok := SanitizeChannelID("12-34 ab")
	assert.True(t, ok)
	assert.Equal(t, "1234", id)

	_, ok = SanitizeChannelID("12345678901234567890")
	assert.False(t, ok)

	id, ok = SanitizeChannelID("x1234567890123456789x")
	assert.True(t, ok)
	assert.Equal(t, "1234567890123456789", id)
}

func TestValidateChannelKeywords(t *testing.T) {
	assert.NoError(t, ValidateChannelKeywords(ChannelKeywords{{ChannelID: "1234567890123456789"}}))
	assert.NoError(t, ValidateChannelKeywords(nil))

	err := ValidateChannelKeywords(ChannelKeywords{
		{ChannelID: "1234567890123456789"},
		{ChannelID: "channel-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "channel-1", verr.Value)
}
