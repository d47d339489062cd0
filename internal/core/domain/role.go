package domain

// Role is the application-level privilege of a Profile.
type Role string

const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// roleRanks defines the total order READER < AUTHOR < ADMIN used for
// minimum-privilege checks. Unknown roles rank 0 and meet nothing.
var roleRanks = map[Role]int{
	RoleReader: 1,
	RoleAuthor: 2,
	RoleAdmin:  3,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Meets reports whether r satisfies the given minimum role in the hierarchy.
func (r Role) Meets(minimum Role) bool {
	return roleRanks[r] >= roleRanks[minimum]
}

// ParseRole converts a string into a Role, returning ErrInvalidRole for
// anything outside the three-value enum.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
