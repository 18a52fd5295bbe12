package sexpr

import "strings"

// StripComments removes every `;` line comment from input, including the
// trailing line terminator. It runs over the whole script before parsing
// starts; the parser itself never sees comments.
func StripComments(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		if input[i] == ';' {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			if i < len(input) {
				i++ // consume the newline as well
			}
			continue
		}
		b.WriteByte(input[i])
		i++
	}
	return b.String()
}
