package domain

import "fmt"

// ValidateSeatLabels checks that labels form a well-formed, duplicate-free
// subset of the hall's seat grid with exactly expectedCount entries. It
// returns the labels in their original order. The validation is pure; claims
// are a separate concern.
//
// A repeated label is rejected outright rather than counted twice, so two
// copies of the same seat can never pass for two distinct tickets.
func ValidateSeatLabels(labels []string, hall HallGeometry, expectedCount int) ([]string, error) {
	valid := make(map[string]bool, len(hall.SeatRows)*len(hall.SeatColumns))
	for _, label := range hall.SeatLabels() {
		valid[label] = true
	}

	seen := make(map[string]bool, len(labels))
	validated := make([]string, 0, len(labels))

	for _, label := range labels {
		if !valid[label] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, label)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeatLabel, label)
		}

		seen[label] = true
		validated = append(validated, label)
	}

	if len(validated) != expectedCount {
		return nil, ErrSeatCountMismatch
	}

	return validated, nil
}
