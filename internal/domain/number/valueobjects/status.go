package valueobjects

// Status is the toll-free verification status. It is only meaningful for
// US toll-free numbers and is nil everywhere else.
type Status string

const (
	StatusUnverified Status = "UNVERIFIED"
	StatusAssigned   Status = "ASSIGNED"
)

var validStatuses = map[Status]bool{
	StatusUnverified: true,
	StatusAssigned:   true,
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	return validStatuses[s]
}
