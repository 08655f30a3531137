package parser

import (
	"strings"

	"research-rag/internal/models"
)

// separators is the split-boundary priority list: paragraph break first,
// then line break, then word break, then a hard character cut.
var separators = []string{"\n\n", "\n", " "}

// span is a chunk of the joined document text together with the rune offset
// it starts at, used for page attribution.
type span struct {
	start int
	text  string
}

// splitRunes walks the text producing chunks of at most size runes. Each cut
// lands on the highest-priority separator available inside the window, falling
// back to a plain character cut when none is present. Adjacent chunks share
// exactly overlap runes, except when a chunk is shorter than the overlap
// itself, in which case the next chunk starts where the previous ended.
func splitRunes(runes []rune, size, overlap int) []span {
	if size <= 0 || len(runes) == 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}

	var out []span
	start := 0
	for {
		end := start + size
		if end >= len(runes) {
			out = append(out, span{start: start, text: string(runes[start:])})
			break
		}
		cut := findCut(runes, start, end, overlap)
		out = append(out, span{start: start, text: string(runes[start:cut])})
		start = cut - overlap
	}
	return out
}

// findCut returns the cut position for the next chunk, preferring the last
// occurrence of the highest-priority separator within the window. The
// separator stays with the leading chunk. A cut inside the first overlap
// runes would make the following chunk start at or before this one, so only
// cuts beyond start+overlap are eligible.
func findCut(runes []rune, start, end, overlap int) int {
	window := string(runes[start:end])
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			cut := start + len([]rune(window[:i])) + len([]rune(sep))
			if cut > start+overlap {
				return cut
			}
		}
	}
	return end
}

// Chunk joins the page texts with a paragraph break and splits the result
// into overlapping chunks carrying provenance metadata. A chunk's page number
// is the page containing its first character.
func Chunk(pages []models.Page, sourceFilename string, chunkSize, chunkOverlap int) []models.Chunk {
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
		chunkOverlap = defaultChunkOverlap
	}

	var joined []rune
	pageStarts := make([]int, len(pages))
	for i, p := range pages {
		if i > 0 {
			joined = append(joined, '\n', '\n')
		}
		pageStarts[i] = len(joined)
		joined = append(joined, []rune(p.Text)...)
	}

	var chunks []models.Chunk
	for _, s := range splitRunes(joined, chunkSize, chunkOverlap) {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Content:        s.text,
			SourceFilename: sourceFilename,
			PageNumber:     pageAt(pages, pageStarts, s.start),
			ChunkID:        len(chunks),
		})
	}
	return chunks
}

// pageAt finds the page whose text contains the given rune offset.
func pageAt(pages []models.Page, pageStarts []int, offset int) int {
	page := 1
	for i := range pages {
		if pageStarts[i] > offset {
			break
		}
		page = pages[i].Number
	}
	return page
}
