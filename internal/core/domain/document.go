package domain

import "strconv"

// FileType identifies a supported course-material format.
type FileType string

// Supported corpus file types.
const (
	FileTypePDF      FileType = ".pdf"
	FileTypeDocx     FileType = ".docx"
	FileTypeText     FileType = ".txt"
	FileTypeMarkdown FileType = ".md"
)

// SupportedFileTypes lists every file type the ingestion path accepts.
// Files with other extensions are skipped, not errored.
func SupportedFileTypes() []FileType {
	return []FileType{FileTypePDF, FileTypeDocx, FileTypeText, FileTypeMarkdown}
}

// IsSupported returns true if the extension belongs to the supported set.
func (t FileType) IsSupported() bool {
	switch t {
	case FileTypePDF, FileTypeDocx, FileTypeText, FileTypeMarkdown:
		return true
	default:
		return false
	}
}

// String returns the extension string.
func (t FileType) String() string {
	return string(t)
}

// Document is a source file at ingestion time. It is immutable once the text
// has been extracted and is not retained after chunking; only chunks flow
// downstream.
type Document struct {
	// ID is a per-ingestion identifier, recorded in chunk metadata so stored
	// chunks can be traced to the ingestion that wrote them. It is not
	// stable across runs; chunk IDs are, see Chunk.
	ID string

	// Path is the absolute file path.
	Path string

	// Name is the stable base name of the file. Chunk identity derives from it.
	Name string

	// Type is the file type.
	Type FileType

	// Size is the file size in bytes.
	Size int64

	// Text is the extracted raw text of the whole document.
	Text string

	// Pages holds per-page text when the source format carries native
	// pagination (PDF). Empty for unpaginated formats.
	Pages []PageText
}

// PageText is the extracted text of a single page of a paginated document.
type PageText struct {
	// Number is the 1-based page number.
	Number int

	// Text is the page's extracted text.
	Text string
}

// Chunk is a contiguous span of a document's cleaned text, the unit of
// embedding and retrieval.
type Chunk struct {
	// Content is the cleaned chunk text.
	Content string

	// SourceFile is the base name of the originating document.
	SourceFile string

	// Index is the 0-based ordinal of the chunk within its document.
	Index int

	// StartWord and EndWord delimit the chunk's word span [StartWord, EndWord)
	// in the cleaned document text.
	StartWord int
	EndWord   int

	// PageNumber is the 1-based source page when known, 0 otherwise.
	PageNumber int

	// Metadata carries caller-supplied key-value pairs copied onto the chunk,
	// plus the span fields above. Values must be JSON-safe primitives.
	Metadata map[string]any
}

// ID returns the chunk's externally visible identity, derived
// deterministically from the source file name and ordinal. Re-ingesting an
// unchanged file yields the same IDs, so store writes upsert instead of
// duplicating.
func (c Chunk) ID() string {
	return ChunkID(c.SourceFile, c.Index)
}

// ChunkID derives the deterministic chunk identifier for a source file name
// and chunk ordinal.
func ChunkID(sourceFile string, index int) string {
	return sourceFile + "_chunk_" + strconv.Itoa(index)
}

// EncodedChunk is a chunk together with its embedding vector. Created once at
// ingestion and owned by the vector store after insertion.
type EncodedChunk struct {
	Chunk

	// Embedding is the fixed-dimension vector produced by the embedding
	// service.
	Embedding []float32
}

// RetrievedItem is a single nearest-neighbour result.
type RetrievedItem struct {
	// ID is the stored chunk ID.
	ID string

	// Content is the stored chunk text.
	Content string

	// Metadata is the stored metadata map.
	Metadata map[string]any

	// Distance is the store's cosine distance in [0, 2].
	Distance float64

	// Similarity is the derived relevance score in [0, 1].
	Similarity float64
}

// SimilarityFromDistance converts a cosine distance to a similarity score.
//
// The stores in this repository report cosine distance d = 1 - cos(q, v),
// which lies in [0, 2]; 1 - d recovers the raw cosine similarity. Negative
// cosine values carry no ranking meaning for normalised text embeddings, so
// the result is clamped to [0, 1]. A store with a different distance metric
// must not be wired through this conversion unchanged.
func SimilarityFromDistance(distance float64) float64 {
	s := 1 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Metadata keys written by the ingestion path and read back by the citation
// builder. Values are JSON-safe primitives; the store adapter stringifies
// anything else before persisting.
const (
	MetaSourceFile = "source_file"
	MetaDocumentID = "document_id"
	MetaFilePath   = "file_path"
	MetaFileType   = "file_type"
	MetaFileSize   = "file_size"
	MetaChunkIndex = "chunk_index"
	MetaStartWord  = "start_word"
	MetaEndWord    = "end_word"
	MetaPageNumber = "page_number"
)
