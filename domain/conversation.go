package domain

import "strings"

// Separator joins the two participant identifiers of a conversation key.
// Identifiers issued by the auth layer are UUIDs and can never contain it.
const Separator = "__"

// ConversationID is the deterministic symmetric key naming a two-party
// message thread. It is derived on demand from the two live participant
// identities and is never persisted as an entity of its own.
type ConversationID string

func (c ConversationID) IsZero() bool {
	return c == ""
}

func (c ConversationID) String() string {
	return string(c)
}

// Resolve derives the conversation key for a participant pair by sorting the
// two identifiers lexicographically and joining them with Separator, so that
// Resolve(a, b) == Resolve(b, a) for every pair.
//
// It reports false when either side is missing: the caller is in the idle
// "no conversation" state and must neither subscribe nor send.
func Resolve(selfID, peerID Participant) (ConversationID, bool) {
	self := strings.TrimSpace(selfID.String())
	peer := strings.TrimSpace(peerID.String())
	if self == "" || peer == "" {
		return "", false
	}
	if self > peer {
		self, peer = peer, self
	}
	return ConversationID(self + Separator + peer), true
}

// Participants splits a conversation key back into its two members.
func (c ConversationID) Participants() (Participant, Participant, bool) {
	left, right, found := strings.Cut(c.String(), Separator)
	if !found || left == "" || right == "" {
		return "", "", false
	}
	return Participant(left), Participant(right), true
}
