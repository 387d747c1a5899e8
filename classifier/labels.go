package classifier

import (
	"os"
	"strings"
	"unicode"
)

// LoadLabels reads the ordered label set, one class name per line.
// Index position corresponds to the model output vector position.
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n"), nil
}

// DisplayName converts a raw class name to its on-screen form:
// underscores become spaces and the first letter is capitalized.
func DisplayName(label string) string {
	name := strings.ReplaceAll(label, "_", " ")
	runes := []rune(name)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
