package content

import (
	"crypto/rand"
	"encoding/hex"
)

// randomID returns length hex characters of crypto randomness.
func randomID(length int) string {
	b := make([]byte, (length+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:length]
}

func newPostID() string   { return "p_" + randomID(12) }
func newSlug() string     { return "post-" + randomID(10) }
func newFriendID() string { return "f_" + randomID(12) }
