package lib

import (
	"fmt"
	"strings"
)

// FormatForLLM wraps extracted text and page metadata into the
// canonical block consumed downstream. Pure and deterministic.
func FormatForLLM(url, title, description, content string) string {
	block := fmt.Sprintf("URL: %s\nTITLE: %s\nDESCRIPTION: %s\nCONTENT:\n%s", url, title, description, content)
	return strings.TrimSpace(block)
}
