package role

import "strings"

// Role is the part a server plays in its ensemble.
type Role string

const (
	Follower   Role = "Follower"
	Leader     Role = "Leader"
	Standalone Role = "Standalone"
	Unknown    Role = "Unknown"
)

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// classifiers are checked in order; the first marker found wins.
var classifiers = []struct {
	marker string
	role   Role
}{
	{"Mode: follower", Follower},
	{"Mode: leader", Leader},
	{"Mode: standalone", Standalone},
}

// Classify maps a stat response onto a Role by substring match.
func Classify(resp string) Role {
	for _, c := range classifiers {
		if strings.Contains(resp, c.marker) {
			return c.role
		}
	}
	return Unknown
}
