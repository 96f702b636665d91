package models

import "strings"

// EphemeralPrefix marks a reference into the local staging store.
const EphemeralPrefix = "local:"

// IsEphemeralRef reports whether ref is a process-local staged image rather
// than a durable URL.
func IsEphemeralRef(ref string) bool {
	return strings.HasPrefix(ref, EphemeralPrefix)
}

// DurableRefs filters out ephemeral references, keeping order.
func DurableRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if !IsEphemeralRef(r) {
			out = append(out, r)
		}
	}
	return out
}
