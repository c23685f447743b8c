// Package emoji maps symbolic names to emoji with ASCII fallbacks for
// terminals that cannot show them (--no-emoji).
package emoji

import "sync/atomic"

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"chart":      {"📈", "[CHT]"},
	"statistics": {"📊", "[STATS]"},
	"mark":       {"🎯", "[MRK]"},
	"row":        {"🔢", "[#]"},
	"field":      {"🏷️", "[FLD]"},
	"options":    {"⚙️", "[OPT]"},
	"column":     {"📋", "[COL]"},
	"watch":      {"👀", "[WAT]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// Keys returns the known names.
func Keys() []string {
	keys := make([]string, 0, len(emojiMap))
	for k := range emojiMap {
		keys = append(keys, k)
	}
	return keys
}
