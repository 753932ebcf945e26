package valueobjects

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Capability is a messaging or voice service a number supports.
type Capability string

const (
	CapabilitySMS  Capability = "SMS"
	CapabilityMMS  Capability = "MMS"
	CapabilityTTS  Capability = "TTS"
	CapabilityCall Capability = "CALL"
)

var validCapabilities = map[Capability]bool{
	CapabilitySMS:  true,
	CapabilityMMS:  true,
	CapabilityTTS:  true,
	CapabilityCall: true,
}

// String returns the string representation.
func (c Capability) String() string {
	return string(c)
}

// IsValid checks if the capability is valid.
func (c Capability) IsValid() bool {
	return validCapabilities[c]
}

// Capabilities is a set of capabilities, stored without duplicates.
type Capabilities []Capability

// NewCapabilities builds a deduplicated, sorted capability set.
func NewCapabilities(caps ...Capability) Capabilities {
	seen := make(map[Capability]bool, len(caps))
	out := make(Capabilities, 0, len(caps))
	for _, c := range caps {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValid checks that the set is non-empty and every element is valid.
func (cs Capabilities) IsValid() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

// Contains reports whether the set includes the given capability.
func (cs Capabilities) Contains(c Capability) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings.
func (cs Capabilities) Strings() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// ParseCapabilities builds a capability set from plain strings,
// rejecting empty input and unknown names.
func ParseCapabilities(names []string) (Capabilities, error) {
	if len(names) == 0 {
		return nil, errors.New("capabilities cannot be empty")
	}
	caps := make([]Capability, 0, len(names))
	for _, name := range names {
		c := Capability(strings.ToUpper(strings.TrimSpace(name)))
		if !c.IsValid() {
			return nil, fmt.Errorf("invalid capability: %s", name)
		}
		caps = append(caps, c)
	}
	return NewCapabilities(caps...), nil
}
