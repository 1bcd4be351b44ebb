package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the artist column is
	// dropped from the album list.
	LayoutCompactWidth = 60

	// LayoutMaxCardWidth caps the width of the detail screen content.
	LayoutMaxCardWidth = 80
)

// Fixed chrome heights.
const (
	headerHeight = 2 // logo line and rule
	footerHeight = 1 // key hints
	playerHeight = 1 // mini-player strip

	helpModalWidth = 40
)

// bodyHeight returns the rows left for screen content.
func bodyHeight(total int) int {
	h := total - headerHeight - footerHeight - playerHeight
	if h < 1 {
		return 1
	}
	return h
}
