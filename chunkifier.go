package main

import (
	"strings"

	"github.com/docqa/askdocs/docstore"
)

// maxTextLength caps how much text a single document may contribute. Longer
// input is cut at the cap and reported as truncated rather than rejected.
const maxTextLength = 1_000_000

// Windows that don't reach the end of the text try to end on one of these,
// checked in order, so chunks don't cut mid-sentence.
var sentenceEnds = []string{". ", ".\n", "! ", "?\n"}

type DefaultChunkifier struct {
	chunkSize    int
	chunkOverlap int
}

// Chunkify splits text into overlapping windows of at most chunkSize bytes.
// A window that doesn't reach the end of the text is shrunk back to the last
// sentence end in its back half, if there is one. Chunk ids are dense from 0
// over emitted chunks; windows that trim down to nothing are skipped without
// consuming an id. The second return reports whether input was truncated at
// maxTextLength.
func (c *DefaultChunkifier) Chunkify(text string) ([]docstore.Chunk, bool) {
	truncated := false
	if len(text) > maxTextLength {
		text = text[:maxTextLength]
		truncated = true
	}

	chunks := []docstore.Chunk{}
	if strings.TrimSpace(text) == "" {
		return chunks, truncated
	}

	l := len(text)
	start := 0
	id := 0

	for start < l {
		end := min(start+c.chunkSize, l)
		window := text[start:end]

		if end < l && len(window) > 50 {
			for _, delim := range sentenceEnds {
				i := strings.LastIndex(window, delim)
				if i != -1 && float64(i) > float64(len(window))*0.5 {
					end = start + i + len(delim)
					window = text[start:end]
					break
				}
			}
		}

		if trimmed := strings.TrimSpace(window); trimmed != "" {
			chunks = append(chunks, docstore.Chunk{
				Text:      trimmed,
				ID:        id,
				StartChar: start,
				EndChar:   end,
			})
			id++
		}

		if end >= l {
			break
		}

		// The overlap must never restart a window at or before its own start.
		next := end - c.chunkOverlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, truncated
}
