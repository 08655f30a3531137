package models

// Page holds the raw text extracted from one page of a source document.
// Page numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

// Chunk represents a split piece of a document with provenance metadata.
// PageNumber is the page containing the chunk's first character; a chunk
// spanning a page break inherits the page it starts on.
type Chunk struct {
	Content        string
	SourceFilename string
	PageNumber     int
	ChunkID        int
}

// Retrieved pairs a chunk with its similarity score from the vector index.
type Retrieved struct {
	Chunk      Chunk
	Similarity float32
}

// Source is a citation record shown alongside an answer.
type Source struct {
	Number   int    `json:"number"`
	Filename string `json:"filename"`
	Page     int    `json:"page"`
	Excerpt  string `json:"excerpt"`
}

// Turn is one question/answer exchange held in a chat session.
type Turn struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources"`
}
