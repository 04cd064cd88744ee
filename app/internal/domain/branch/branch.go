package branch

import "strings"

// Branch is a store location that receives orders over a messaging deep link.
type Branch struct {
	ID     int64
	Name   string
	Number string
}

// Contact returns the messaging address of the branch, or "" when none is usable.
func (b Branch) Contact() string {
	return strings.TrimSpace(b.Number)
}
