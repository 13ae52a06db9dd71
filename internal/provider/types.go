package provider

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SearchType selects the retrieval strategy for a search query.
type SearchType string

const (
	// SearchTypeKeyword is classic full-text (BM25-style) search.
	SearchTypeKeyword SearchType = "keyword"
	// SearchTypeSemantic is embedding-based semantic search.
	SearchTypeSemantic SearchType = "semantic"
	// SearchTypeHybrid combines keyword and semantic ranking.
	SearchTypeHybrid SearchType = "hybrid"
)

// Validate returns an error if the search type is not one of the known values.
func (s SearchType) Validate() error {
	switch s {
	case SearchTypeKeyword, SearchTypeSemantic, SearchTypeHybrid:
		return nil
	default:
		return fmt.Errorf("provider: unknown search type %q — valid values: keyword, semantic, hybrid", string(s))
	}
}

// DocumentType classifies a clinical document per regulatory convention.
type DocumentType string

const (
	// DocumentTypeCSR is a Clinical Study Report (ICH E3 format).
	DocumentTypeCSR DocumentType = "CSR"
	// DocumentTypeTMF is a Trial Master File artifact.
	DocumentTypeTMF DocumentType = "TMF"
)

// DateRange bounds a document-date filter. Zero-value ends are open.
type DateRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// SearchFilters narrows a search query. All fields are optional; absent
// fields place no constraint.
type SearchFilters struct {
	DocumentType DocumentType `json:"document_type,omitempty"`
	StudyID      string       `json:"study_id,omitempty"`
	SectionCodes []string     `json:"section_codes,omitempty"`
	DateRange    *DateRange   `json:"date_range,omitempty"`
	AccessLevel  string       `json:"access_level,omitempty"`
}

// SearchQuery is a full-text or semantic search request.
type SearchQuery struct {
	Text       string        `json:"text"`
	SearchType SearchType    `json:"search_type"`
	Filters    SearchFilters `json:"filters"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

// NewSearchQuery returns a query for text with the default search type,
// limit, and empty filters.
func NewSearchQuery(text string) *SearchQuery {
	return &SearchQuery{
		Text:       text,
		SearchType: SearchTypeKeyword,
		Limit:      20,
	}
}

// Validate checks pagination bounds and the search type. maxLimit is the
// deployment-configured ceiling on page size.
func (q *SearchQuery) Validate(maxLimit int) error {
	if err := q.SearchType.Validate(); err != nil {
		return err
	}
	if q.Limit <= 0 {
		return fmt.Errorf("provider: search limit must be positive, got %d", q.Limit)
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		return fmt.Errorf("provider: search limit %d exceeds maximum %d", q.Limit, maxLimit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("provider: search offset must be non-negative, got %d", q.Offset)
	}
	return nil
}

// TextHighlight marks a scored span inside a result snippet.
// StartPos and EndPos are byte offsets into the snippet.
type TextHighlight struct {
	StartPos int     `json:"start_pos"`
	EndPos   int     `json:"end_pos"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

// Citation identifies a source passage together with the provenance chain
// that produced it. The chain is the ordered list of processing stages
// (retrieval, ranking, excerpt extraction, ...) and is required for
// auditability — it is never empty.
type Citation struct {
	CitationID       string    `json:"citation_id"`
	DocumentID       string    `json:"document_id"`
	PageNumber       int       `json:"page_number"`
	SectionReference string    `json:"section_reference"`
	TextExcerpt      string    `json:"text_excerpt"`
	ConfidenceScore  float64   `json:"confidence_score"`
	ProvenanceChain  []string  `json:"provenance_chain"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewCitation constructs a validated citation. The citation ID is generated
// and CreatedAt is stamped. Out-of-range confidence and empty provenance are
// rejected, never clamped or defaulted.
func NewCitation(documentID string, pageNumber int, sectionRef, excerpt string, confidence float64, provenance []string) (*Citation, error) {
	c := &Citation{
		CitationID:       uuid.NewString(),
		DocumentID:       documentID,
		PageNumber:       pageNumber,
		SectionReference: sectionRef,
		TextExcerpt:      excerpt,
		ConfidenceScore:  confidence,
		ProvenanceChain:  provenance,
		CreatedAt:        time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces the citation invariants: confidence in [0,1] and a
// non-empty provenance chain.
func (c *Citation) Validate() error {
	if c.ConfidenceScore < 0 || c.ConfidenceScore > 1 {
		return fmt.Errorf("provider: citation confidence score must be in [0,1], got %g", c.ConfidenceScore)
	}
	if len(c.ProvenanceChain) == 0 {
		return fmt.Errorf("provider: citation provenance chain must not be empty")
	}
	return nil
}

// SearchResult is one hit in a search response.
type SearchResult struct {
	DocumentID     string          `json:"document_id"`
	Title          string          `json:"title"`
	Snippet        string          `json:"snippet"`
	RelevanceScore float64         `json:"relevance_score"`
	Citations      []Citation      `json:"citations"`
	Highlights     []TextHighlight `json:"highlights"`
	Metadata       map[string]any  `json:"metadata"`
}

// SearchResponse aggregates search results. FiltersApplied echoes the filter
// set the backend actually used — after defaults were substituted — not
// necessarily the set that was requested.
type SearchResponse struct {
	Results        []SearchResult `json:"results"`
	TotalCount     int            `json:"total_count"`
	QueryTimeMS    int64          `json:"query_time_ms"`
	SearchType     SearchType     `json:"search_type"`
	FiltersApplied SearchFilters  `json:"filters_applied"`
}

// EmbeddingRequest asks an AI backend to embed a piece of text.
type EmbeddingRequest struct {
	Text      string `json:"text"`
	ModelType string `json:"model_type"`
	Normalize bool   `json:"normalize"`
}

// NewEmbeddingRequest returns a request with the default model type and
// normalization enabled.
func NewEmbeddingRequest(text string) *EmbeddingRequest {
	return &EmbeddingRequest{Text: text, ModelType: "default", Normalize: true}
}

// EmbeddingResponse carries a generated embedding vector. Dimension is the
// model's declared output size and must equal len(Embedding).
type EmbeddingResponse struct {
	Embedding   []float32      `json:"embedding"`
	ModelInfo   map[string]any `json:"model_info"`
	Dimension   int            `json:"dimension"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Validate checks that the vector length matches the declared dimension.
func (r *EmbeddingResponse) Validate() error {
	if len(r.Embedding) != r.Dimension {
		return fmt.Errorf("provider: embedding length %d does not match declared dimension %d", len(r.Embedding), r.Dimension)
	}
	return nil
}

// SummarizationRequest asks an AI backend to summarize a document, or a
// subset of its sections when SectionIDs is set.
type SummarizationRequest struct {
	DocumentID            string         `json:"document_id"`
	SectionIDs            []string       `json:"section_ids,omitempty"`
	MaxLength             int            `json:"max_length"`
	IncludeCitations      bool           `json:"include_citations"`
	ModelParameters       map[string]any `json:"model_parameters,omitempty"`
	PreserveClinicalTerms bool           `json:"preserve_clinical_terms"`
}

// NewSummarizationRequest returns a request with the standard defaults:
// 500-token ceiling, citations included, clinical terms preserved.
func NewSummarizationRequest(documentID string) *SummarizationRequest {
	return &SummarizationRequest{
		DocumentID:            documentID,
		MaxLength:             500,
		IncludeCitations:      true,
		PreserveClinicalTerms: true,
	}
}

// ModelProvenance records which model produced a generated artifact and how.
// Unlike the per-citation provenance chain, model provenance is mandatory on
// every summary.
type ModelProvenance struct {
	ModelID           string             `json:"model_id"`
	ModelVersion      string             `json:"model_version"`
	Provider          string             `json:"provider"`
	Parameters        map[string]any     `json:"parameters,omitempty"`
	InferenceTimeMS   int64              `json:"inference_time_ms"`
	ConfidenceMetrics map[string]float64 `json:"confidence_metrics,omitempty"`
}

// Validate checks that the mandatory identification fields are populated.
func (p *ModelProvenance) Validate() error {
	if p.ModelID == "" {
		return fmt.Errorf("provider: model provenance requires a model id")
	}
	if p.ModelVersion == "" {
		return fmt.Errorf("provider: model provenance requires a model version")
	}
	if p.Provider == "" {
		return fmt.Errorf("provider: model provenance requires a provider name")
	}
	return nil
}

// SummaryResponse is an AI-generated summary with citations and model
// provenance.
type SummaryResponse struct {
	SummaryID         string             `json:"summary_id"`
	Content           string             `json:"content"`
	Citations         []Citation         `json:"citations"`
	ModelInfo         ModelProvenance    `json:"model_info"`
	GeneratedAt       time.Time          `json:"generated_at"`
	ConfidenceMetrics map[string]float64 `json:"confidence_metrics,omitempty"`
}

// ValidateFor checks the response against the request that produced it:
// model provenance must always be populated, and the citation list must be
// non-empty when citations were requested.
func (r *SummaryResponse) ValidateFor(req *SummarizationRequest) error {
	if err := r.ModelInfo.Validate(); err != nil {
		return err
	}
	if req != nil && req.IncludeCitations && len(r.Citations) == 0 {
		return fmt.Errorf("provider: summary for document %q requested citations but carries none", req.DocumentID)
	}
	for i := range r.Citations {
		if err := r.Citations[i].Validate(); err != nil {
			return fmt.Errorf("provider: summary citation %d: %w", i, err)
		}
	}
	return nil
}

// VectorMatch is one hit from a vector similarity search.
type VectorMatch struct {
	DocumentID      string         `json:"document_id"`
	ChunkID         string         `json:"chunk_id"`
	SimilarityScore float64        `json:"similarity_score"`
	Content         string         `json:"content"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Chunk is one indexable unit of a document with its pre-computed embedding.
type Chunk struct {
	ChunkID   string         `json:"chunk_id"`
	Content   string         `json:"content"`
	Embedding []float32      `json:"embedding"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
