package signalctl

// Color is the displayed aspect of a signal.
//
// Only Red, Yellow and Green are produced by a Policy. Manual overrides may
// store any text, see Valid.
type Color string

const (
	Red    Color = "Red"
	Yellow Color = "Yellow"
	Green  Color = "Green"
)

// Colors returns the recognized colors in display order
func Colors() []Color {
	return []Color{Red, Yellow, Green}
}

// Valid reports whether c is one of the recognized colors
func (c Color) Valid() bool {
	switch c {
	case Red, Yellow, Green:
		return true
	}
	return false
}

func (c Color) String() string {
	return string(c)
}
