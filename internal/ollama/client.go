// internal/ollama/client.go
// Package: ollama
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

// ErrServerUnavailable wraps connection-level failures: the request
// could not be opened at all (server down, refused, unreachable).
var ErrServerUnavailable = errors.New("ollama server unavailable")

// ServerError is returned when the server accepts the connection but
// reports an error for the request.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("ollama error: status=%d body=%s", e.Status, e.Body)
}

// Client talks to one Ollama host and measures streamed generations.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given base URL (e.g.
// "http://localhost:11434") with a tuned HTTP transport. Keep-alives
// matter here: reconnect overhead would contaminate TTFT measurements.
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// streamEvent is one NDJSON line of a streamed /api/generate response.
type streamEvent struct {
	Model     string `json:"model"`
	Response  string `json:"response"` // chunk text (empty on the final done=true event)
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count,omitempty"` // populated on done=true
}

// Generate performs a single streamed /api/generate call and derives
// per-request metrics: total latency, time-to-first-token, and
// tokens-per-second from the final event's authoritative eval_count.
// A stream that produces zero chunks yields an absent TTFT and zero
// throughput, not an error.
func (c *Client) Generate(ctx context.Context, model, prompt string) (report.GenerationMetrics, error) {
	body, _ := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: true,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return report.GenerationMetrics{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	// T0: just before send
	t0 := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return report.GenerationMetrics{}, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return report.GenerationMetrics{}, &ServerError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}

	var (
		gotFirstChunk bool
		tFirst        time.Time
		response      bytes.Buffer
		final         streamEvent
		finalLine     []byte
	)

	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var ev streamEvent
			if err := json.Unmarshal(line, &ev); err == nil {
				if !gotFirstChunk && len(ev.Response) > 0 {
					gotFirstChunk = true
					tFirst = time.Now()
				}
				response.WriteString(ev.Response)
				if ev.Done {
					final = ev
					finalLine = bytes.Clone(line)
					break
				}
			}
			// silently skip malformed lines; continue
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return report.GenerationMetrics{}, fmt.Errorf("ollama stream read failed: %w", readErr)
		}
	}

	tEnd := time.Now()

	total := tEnd.Sub(t0).Seconds()
	metrics := report.GenerationMetrics{
		Prompt:          prompt,
		ResponseText:    response.String(),
		TotalLatencyS:   report.Round4(total),
		TokensGenerated: final.EvalCount,
	}

	if gotFirstChunk {
		ttft := report.Round4(tFirst.Sub(t0).Seconds())
		metrics.TimeToFirstTokenS = &ttft
	}
	if final.EvalCount > 0 && total > 0 {
		metrics.TokensPerSecond = report.Round2(float64(final.EvalCount) / total)
	}

	// Keep the final event verbatim; it carries the server-side timings
	// (load/prompt_eval/eval durations) we don't model explicitly.
	if len(finalLine) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(finalLine, &meta); err == nil {
			metrics.OllamaMetadata = meta
		}
	}

	return metrics, nil
}
