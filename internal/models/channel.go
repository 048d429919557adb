package models

import "fmt"

// ChannelIDLength is the length of a canonical channel identifier.
const ChannelIDLength = 19

const placeholderChannelPrefix = "channel-"

func IsValidChannelID(id string) bool {
	if len(id) != ChannelIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// SanitizeChannelID keeps only the digits of raw. The second result is false
// when the digits exceed ChannelIDLength, in which case the input must be
// ignored and the previous value kept.
func SanitizeChannelID(raw string) (string, bool) {
	digits := DigitsOnly(raw)
	if len(digits) > ChannelIDLength {
		return "", false
	}
	return digits, true
}

// ValidateChannelKeywords checks that every channel key is a canonical id.
func ValidateChannelKeywords(entries ChannelKeywords) error {
	for _, e := range entries {
		if !IsValidChannelID(e.ChannelID) {
			return &ValidationError{
				Field:  "channel_keywords key",
				Value:  e.ChannelID,
				Reason: fmt.Sprintf("must be exactly %d digits", ChannelIDLength),
			}
		}
	}
	return nil
}
