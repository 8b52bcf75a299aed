// Package checkwire exposes the SQL analyzer over a small TCP protocol:
// length-prefixed JSON frames, one AnalyzeResponse per AnalyzeRequest.
package checkwire

import (
	"time"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/analyzer"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
	"github.com/lirlia/100day-challenge-backend-sub013/pkg/cache"
)

// AnalyzeRequest is a single SQL check request.
type AnalyzeRequest struct {
	SQL string `json:"sql"`
}

// AnalyzeResponse is the outcome of one request.
type AnalyzeResponse struct {
	Valid          bool              `json:"valid"`
	AST            string            `json:"ast,omitempty"`
	SyntaxErrors   []diag.Diagnostic `json:"syntax_errors,omitempty"`
	SemanticErrors []diag.Diagnostic `json:"semantic_errors,omitempty"`
	ElapsedMS      int64             `json:"elapsed_ms"`
	Cached         bool              `json:"cached,omitempty"`
	Error          string            `json:"error,omitempty"`
}

const defaultCacheSize = 128

// Handler answers analyze requests, memoizing responses by exact SQL text.
// Analysis is deterministic for a fixed catalog, so replaying a cached
// response is sound.
type Handler struct {
	analyzer *analyzer.Analyzer
	cache    *cache.LRU
}

func NewHandler(schema *catalog.Schema) *Handler {
	return &Handler{
		analyzer: analyzer.New(schema),
		cache:    cache.NewLRU(defaultCacheSize),
	}
}

// Handle runs one request. It never fails; operational problems are reported
// through the response's Error field.
func (h *Handler) Handle(req AnalyzeRequest) AnalyzeResponse {
	if req.SQL == "" {
		return AnalyzeResponse{Error: "empty sql"}
	}

	if v, ok := h.cache.Get(req.SQL); ok {
		resp := v.(AnalyzeResponse)
		resp.Cached = true
		return resp
	}

	start := time.Now()
	report := h.analyzer.Analyze(req.SQL)

	resp := AnalyzeResponse{
		Valid:          report.Valid(),
		AST:            report.AST,
		SyntaxErrors:   report.SyntaxErrors,
		SemanticErrors: report.SemanticErrors,
		ElapsedMS:      time.Since(start).Milliseconds(),
	}
	h.cache.Put(req.SQL, resp)
	return resp
}
