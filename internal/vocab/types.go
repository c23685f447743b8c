package vocab

import "strings"

var typeCodes = map[string]string{
	"quantitative": "Q",
	"ordinal":      "O",
	"nominal":      "N",
	"temporal":     "T",
}

// TypeCode returns the one-letter shorthand of a field type, or "" when
// the type is unknown.
func TypeCode(fieldType string) string {
	return typeCodes[fieldType]
}

// ParseType accepts a full type name or its shorthand code and returns the
// full name. The auto-detect sentinel (and "auto") parse to AutoDetect.
func ParseType(s string) (string, error) {
	v := strings.TrimSpace(s)
	if IsAutoDetect(v) {
		return AutoDetect, nil
	}
	lower := strings.ToLower(v)
	if _, ok := typeCodes[lower]; ok {
		return lower, nil
	}
	for name, code := range typeCodes {
		if strings.EqualFold(code, v) {
			return name, nil
		}
	}
	return "", &UnknownKeyError{Vocabulary: "field type", Key: s}
}

// IsAutoDetect reports whether v denotes the auto-detect sentinel.
func IsAutoDetect(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s == AutoDetect || s == "auto"
}
