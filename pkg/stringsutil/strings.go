package stringsutil

import "strings"

var titleReplacer = strings.NewReplacer("-", " ", "_", " ")

// TitleFromBase derives a display title from a base filename by replacing
// dash and underscore separators with spaces.
func TitleFromBase(base string) string {
	return titleReplacer.Replace(base)
}

// StripExtension removes the last extension from a filename. Names without
// an extension, or with only a leading dot, are returned unchanged.
func StripExtension(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}
