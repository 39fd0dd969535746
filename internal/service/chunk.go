package service

// MaxMessageChars is the delivery chunk size for long generated texts
const MaxMessageChars = 4096

// SplitMessage cuts text into consecutive chunks of at most max characters.
// Text that fits is returned as a single chunk.
func SplitMessage(text string, max int) []string {
	if max <= 0 {
		max = MaxMessageChars
	}
	runes := []rune(text)
	if len(runes) <= max {
		return []string{text}
	}
	chunks := make([]string, 0, len(runes)/max+1)
	for i := 0; i < len(runes); i += max {
		end := i + max
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
