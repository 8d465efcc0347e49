package models

import (
	json "github.com/goccy/go-json"
)

// Role is a member's standing inside a club or thunder roster.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleMember
	RolePending
)

var roleNames = map[Role]string{
	RoleAdmin:   "admin",
	RoleMember:  "member",
	RolePending: "pending",
}

// ParseRole maps a wire value to a Role. Unrecognized values yield RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "member":
		return RoleMember
	case "pending":
		return RolePending
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON never fails on an unexpected role string; the entry is kept as
// RoleUnknown so the partitioner can drop it.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}
