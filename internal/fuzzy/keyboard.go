package fuzzy

// Keyboard adjacency for a standard QWERTY layout. A substitution between
// adjacent keys is the most common class of typo and is charged half the
// cost of an arbitrary substitution.

var keyboardRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyboardAdjacent map[[2]rune]bool

func init() {
	keyboardAdjacent = make(map[[2]rune]bool)
	link := func(a, b byte) {
		keyboardAdjacent[[2]rune{rune(a), rune(b)}] = true
		keyboardAdjacent[[2]rune{rune(b), rune(a)}] = true
	}
	for r, row := range keyboardRows {
		for i := 0; i < len(row); i++ {
			if i+1 < len(row) {
				link(row[i], row[i+1])
			}
			// Row stagger puts key i of the lower row under keys i and i+1
			// of the row above.
			if r+1 < len(keyboardRows) {
				below := keyboardRows[r+1]
				if i < len(below) {
					link(row[i], below[i])
				}
				if i > 0 && i-1 < len(below) {
					link(row[i], below[i-1])
				}
			}
		}
	}
}

// Adjacent reports whether two keys are physically next to each other.
func Adjacent(a, b rune) bool {
	return keyboardAdjacent[[2]rune{a, b}]
}
