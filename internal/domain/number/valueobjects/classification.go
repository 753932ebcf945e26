package valueobjects

// Classification is the commercial tier of a number.
type Classification string

const (
	ClassificationBronze Classification = "BRONZE"
	ClassificationSilver Classification = "SILVER"
	ClassificationGold   Classification = "GOLD"
)

var validClassifications = map[Classification]bool{
	ClassificationBronze: true,
	ClassificationSilver: true,
	ClassificationGold:   true,
}

// String returns the string representation.
func (c Classification) String() string {
	return string(c)
}

// IsValid checks if the classification is valid.
func (c Classification) IsValid() bool {
	return validClassifications[c]
}
