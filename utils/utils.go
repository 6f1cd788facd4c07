package utils

import (
	"math/rand"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsStringFold returns true iff the provided string slice hay contains
// string needle, compared case-insensitively.
func ContainsStringFold(hay []string, needle string) bool {
	for _, str := range hay {
		if strings.EqualFold(str, needle) {
			return true
		}
	}
	return false
}

// RandomAlphabetString generates a random lowercase string with length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
