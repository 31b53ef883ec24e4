package model

// Branch represents a facility location offering sport sessions.
// Sessions reference their branch via sessions.branch_id; deleting a
// branch is logical only and leaves its sessions in place.
type Branch struct {
	Base
	Name        string
	Description *string
}
