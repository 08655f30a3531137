package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-rag/internal/models"
)

func onePage(text string) []models.Page {
	return []models.Page{{Number: 1, Text: text}}
}

func TestChunkShortTextSingleChunk(t *testing.T) {
	chunks := Chunk(onePage("The sky is blue."), "colors.pdf", 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, "The sky is blue.", chunks[0].Content)
	assert.Equal(t, "colors.pdf", chunks[0].SourceFilename)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, 0, chunks[0].ChunkID)
}

func TestChunkEmptyInput(t *testing.T) {
	assert.Empty(t, Chunk(nil, "a.pdf", 1000, 200))
	assert.Empty(t, Chunk(onePage(""), "a.pdf", 1000, 200))
	assert.Empty(t, Chunk(onePage("   \n\n  "), "a.pdf", 1000, 200))
}

func TestChunkSizeAndExactOverlap(t *testing.T) {
	const size, overlap = 1000, 200
	text := strings.Repeat("a", 2500) // indivisible, forces character cuts

	chunks := Chunk(onePage(text), "a.pdf", size, overlap)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), size)
		assert.Equal(t, i, c.ChunkID)
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		tail := string(prev[len(prev)-overlap:])
		assert.True(t, strings.HasPrefix(chunks[i].Content, tail),
			"chunk %d must start with the last %d characters of chunk %d", i, overlap, i-1)
	}
}

func TestChunkPrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 400)
	para2 := strings.Repeat("b", 800)
	text := para1 + "\n\n" + para2

	chunks := Chunk(onePage(text), "a.pdf", 1000, 100)

	require.Len(t, chunks, 2)
	assert.Equal(t, para1+"\n\n", chunks[0].Content)
	assert.True(t, strings.HasSuffix(chunks[1].Content, para2))
	// overlap is still exact across the boundary cut
	prev := []rune(chunks[0].Content)
	assert.True(t, strings.HasPrefix(chunks[1].Content, string(prev[len(prev)-100:])))
}

func TestChunkFallsBackToWordBoundary(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 300)) // 1499 chars, no newlines

	chunks := Chunk(onePage(text), "a.pdf", 1000, 200)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0].Content, " "), "cut should land after a space")
	assert.LessOrEqual(t, len([]rune(chunks[0].Content)), 1000)
}

func TestChunkPageAttribution(t *testing.T) {
	pages := []models.Page{
		{Number: 1, Text: strings.Repeat("a", 500)},
		{Number: 2, Text: strings.Repeat("b", 700)},
	}

	chunks := Chunk(pages, "two.pdf", 600, 100)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		first := []rune(c.Content)[0]
		switch first {
		case 'a':
			assert.Equal(t, 1, c.PageNumber)
		case 'b':
			assert.Equal(t, 2, c.PageNumber)
		}
	}
	// a chunk spanning the page break inherits the page it starts on
	assert.Equal(t, 1, chunks[0].PageNumber)
	last := chunks[len(chunks)-1]
	assert.Equal(t, 2, last.PageNumber)
}

func TestChunkZeroConfigUsesDefaults(t *testing.T) {
	text := strings.Repeat("x", 3000)

	chunks := Chunk(onePage(text), "a.pdf", 0, 0)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), defaultChunkSize)
	}
}
