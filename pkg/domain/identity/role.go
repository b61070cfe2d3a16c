package identity

import "strings"

type Role string

const (
	RoleViewer  Role = "viewer"
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:  0,
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// ParseRole maps unknown values to the lowest tier.
func ParseRole(raw string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := roleRank[r]; ok {
		return r
	}
	return RoleViewer
}

func (r Role) Rank() int {
	return roleRank[ParseRole(string(r))]
}

func (r Role) IsAdministrative() bool {
	return r.Rank() >= roleRank[RoleAdmin]
}
