package utils

import (
	"strings"
	"unicode"
)

// Initials builds the badge text shown when an avatar image cannot be loaded.
// "Dr. Sarah Johnson" -> "SJ". Honorifics are skipped.
func Initials(name string) string {
	var letters []rune
	for _, word := range strings.Fields(name) {
		if isHonorific(word) {
			continue
		}
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters = append(letters, unicode.ToUpper(r))
				break
			}
		}
	}
	switch len(letters) {
	case 0:
		return "?"
	case 1:
		return string(letters)
	default:
		return string([]rune{letters[0], letters[len(letters)-1]})
	}
}

func isHonorific(word string) bool {
	switch strings.ToLower(strings.TrimSuffix(word, ".")) {
	case "dr", "mr", "mrs", "ms", "prof":
		return true
	}
	return false
}
