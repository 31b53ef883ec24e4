package model

// Sport represents a discipline that sessions can be scheduled for,
// e.g. ice skating, football, basketball.  IsActive allows a sport to
// be withdrawn from scheduling without deleting it.
type Sport struct {
	Base
	Name        string
	Description *string
	IsActive    bool
}
