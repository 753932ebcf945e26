// Package valueobjects provides value objects for the number domain.
package valueobjects

// NumberType classifies the kind of telephony number.
type NumberType string

const (
	NumberTypeMobile    NumberType = "MOBILE"
	NumberTypeLandline  NumberType = "LANDLINE"
	NumberTypeTollFree  NumberType = "TOLL_FREE"
	NumberTypeShortCode NumberType = "SHORT_CODE"
)

var validNumberTypes = map[NumberType]bool{
	NumberTypeMobile:    true,
	NumberTypeLandline:  true,
	NumberTypeTollFree:  true,
	NumberTypeShortCode: true,
}

// String returns the string representation.
func (t NumberType) String() string {
	return string(t)
}

// IsValid checks if the number type is valid.
func (t NumberType) IsValid() bool {
	return validNumberTypes[t]
}
