package messages

import (
	"context"
	"io"
	"net/http"
	"time"
)

const probeSnippetLen = 300

// ProbeResult is a single diagnostic request against the messages endpoint.
type ProbeResult struct {
	URL         string `json:"url"`
	Status      *int   `json:"status"`
	ElapsedMs   int64  `json:"elapsed_ms,omitempty"`
	BodySnippet string `json:"body_snippet,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Probe requests the first two messages once, without retries.
func (s *Source) Probe(ctx context.Context) ProbeResult {
	target, err := s.pageURL(0, 2)
	if err != nil {
		return ProbeResult{URL: s.cfg.APIURL(), Error: err.Error()}
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return ProbeResult{URL: target, Error: err.Error()}
	}

	start := time.Now()
	resp, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		return ProbeResult{URL: target, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, probeSnippetLen))
	status := resp.StatusCode
	return ProbeResult{
		URL:         resp.Request.URL.String(),
		Status:      &status,
		ElapsedMs:   time.Since(start).Milliseconds(),
		BodySnippet: string(body),
	}
}
