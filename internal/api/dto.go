package api

import "github.com/samcharles93/spanmask/internal/masking"

// MaskRequest asks the server to compute a mask. Unset config fields take
// the server defaults; an empty SeqLengths treats every example as full
// width. Without a Seed the server-wide source is used and the result is
// not reproducible.
type MaskRequest struct {
	Strategy   string   `json:"strategy,omitempty"`
	Batch      int      `json:"batch,omitempty"`
	MaxSeqLen  int      `json:"max_seq_len"`
	SeqLengths []int    `json:"seq_lengths,omitempty"`
	MaskProb   *float64 `json:"mask_prob,omitempty"`
	SpanLen    *int     `json:"span_len,omitempty"`
	MinSpans   *int     `json:"min_spans,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
}

// MaskRecord is a computed mask as stored and returned by the server.
type MaskRecord struct {
	ID         string                `json:"id"`
	Object     string                `json:"object"`
	CreatedAt  int64                 `json:"created_at"`
	Strategy   string                `json:"strategy"`
	Shape      masking.BatchShape    `json:"shape"`
	SeqLengths []int                 `json:"seq_lengths"`
	Config     *masking.SpanConfig   `json:"config,omitempty"`
	Seed       *int64                `json:"seed,omitempty"`
	Rows       []string              `json:"rows"`
	Masked     int                   `json:"masked"`
	Coverage   masking.CoverageStats `json:"coverage"`
}

type DeleteMaskResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type StrategyInfo struct {
	Name        string `json:"name"`
	Implemented bool   `json:"implemented"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}
