package accessgate

import "fmt"

// AccessLevel is the tier a caller is allowed to operate at.
type AccessLevel string

const (
	AccessBasic   AccessLevel = "basic"
	AccessLimited AccessLevel = "limited"
	AccessPremium AccessLevel = "premium"
)

// Valid reports whether the level is one of the known tiers.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessBasic, AccessLimited, AccessPremium:
		return true
	}
	return false
}

// Rank returns the position of the level on the ordered scale.
// Unknown levels rank below basic.
func (l AccessLevel) Rank() int {
	switch l {
	case AccessBasic:
		return 0
	case AccessLimited:
		return 1
	case AccessPremium:
		return 2
	}
	return -1
}

// AtLeast reports whether the level satisfies the given minimum.
func (l AccessLevel) AtLeast(min AccessLevel) bool {
	return l.Rank() >= min.Rank()
}

// ParseAccessLevel parses a string into an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	l := AccessLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown access level: %q", s)
	}
	return l, nil
}
