package student

import (
	"fmt"
	"math/rand"
)

// Word lists for generated credentials. These are deliberately short: the
// credential is read out or typed by event staff, so it trades entropy for
// memorability. It only guards access to one attendee's photo folder.
var (
	adjectives = []string{"red", "blue", "green", "yellow", "purple", "orange", "pink", "brown", "black", "white"}
	nouns      = []string{"apple", "banana", "cherry", "date", "elderberry", "fig", "grape", "honeydew", "kiwi", "lemon"}
)

// GeneratePassword returns a human-typable adjective-noun-number credential,
// e.g. "blue-kiwi-42".
func GeneratePassword() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return fmt.Sprintf("%s-%s-%d", adj, noun, rand.Intn(100))
}
