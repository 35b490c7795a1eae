package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RolePatrol        Role = "PATROL"
	RoleDesk          Role = "DESK"
	RoleField         Role = "FIELD"
	RoleInvestigating Role = "INVESTIGATING"
)

// Roles lists every role the backend can assign, in display order.
var Roles = []Role{RoleAdmin, RolePatrol, RoleDesk, RoleField, RoleInvestigating}

// ParseRole is the only place a backend role string becomes a Role.
// Matching ignores case and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	v := strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(v, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) Valid() bool {
	for _, x := range Roles {
		if r == x {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Badge returns the style used for role labels.
func (r Role) Badge() StyleToken {
	switch r {
	case RoleAdmin:
		return StyleCritical
	case RolePatrol:
		return StyleInfo
	case RoleDesk:
		return StyleNeutral
	case RoleField:
		return StyleSuccess
	case RoleInvestigating:
		return StyleWarning
	}
	return StyleMuted
}
