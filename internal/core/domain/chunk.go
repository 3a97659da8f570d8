package domain

// Chunk types recorded on chunk records.
const (
	ChunkTypeText        = "text"
	ChunkTypeSlide       = "slide"
	ChunkTypeSpreadsheet = "spreadsheet"
	ChunkTypeTable       = "table"
)

// Chunk is one retrievable unit of a document's text.
//
// Text is the verbatim content shown to end users. The contextualised
// variant built for embedding is a separate string and must never be
// stored in its place.
type Chunk struct {
	// Text is the verbatim chunk content.
	Text string

	// Section is the structural section the chunk came from
	// (e.g. "Slide 3", "Sheet: Budget", a heading title).
	Section string

	// Subsection is a finer-grained location, when known.
	Subsection string

	// Type is one of the ChunkType* constants.
	Type string

	// Tags are free-form labels attached during chunking.
	Tags []string

	// Summary is the parent document's summary, prefixed with the
	// document name. Empty when summarisation failed.
	Summary string

	// Confidence scores extraction quality (1.0 = clean extraction).
	Confidence float64
}
