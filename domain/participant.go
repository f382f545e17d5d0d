// Package domain contains core concepts of the messaging system.
// This file defines Participant identities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "strings"

// Participant is the opaque stable identity issued by the authentication
// layer. The messaging core owns no attributes beyond the identifier itself.
type Participant string

func (p Participant) IsZero() bool {
	return strings.TrimSpace(string(p)) == ""
}

func (p Participant) String() string {
	return string(p)
}
