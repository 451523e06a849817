package vercel

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/loykin/vercelenv/internal/common"
	"github.com/loykin/vercelenv/internal/httpc"
)

// Setter adds one environment variable to a Vercel project.
type Setter struct {
	Request  RequestSpec
	Response ResponseSpec
	// TLSConfig is passed to the HTTP client; nil keeps the default transport.
	TLSConfig *tls.Config
}

// Execute renders the request, sends exactly one POST and classifies the status.
// A non-success status is not an error: the result carries it. Transport
// failures (DNS, refused connections, timeouts) are returned as errors and no
// result is produced.
func (s *Setter) Execute(ctx context.Context) (*ExecResult, error) {
	logger := common.GetLogger().WithComponent("env-setter").WithProject(s.Request.ProjectID)

	rr, err := s.Request.Render()
	if err != nil {
		logger.Error("failed to build request", "error", err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	logger = logger.WithRequest(rr.Method, rr.URL)
	logger.Debug("sending request",
		"key", s.Request.Payload.Key,
		"type", s.Request.Payload.Type,
		"targets", len(s.Request.Payload.Target),
		"queries_count", len(rr.Queries))

	h := httpc.Httpc{TlsConfig: s.TLSConfig}
	resp, err := h.New().R().
		SetContext(ctx).
		SetHeaders(rr.Headers).
		SetQueryParams(rr.Queries).
		SetBody(rr.Body).
		Execute(rr.Method, rr.URL)
	if err != nil {
		logger.Error("HTTP request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w", rr.Method, rr.URL, err)
	}

	body := resp.Body()
	res := &ExecResult{
		StatusCode:   resp.StatusCode(),
		ResponseBody: string(body),
		Succeeded:    s.Response.Succeeded(resp.StatusCode()),
	}
	res.EnvID, res.ErrorCode, res.ErrorMessage = s.Response.Inspect(body)

	logger.Debug("received HTTP response",
		"status_code", res.StatusCode,
		"succeeded", res.Succeeded,
		"env_id", res.EnvID,
		"error_code", res.ErrorCode,
		"error_message", res.ErrorMessage)
	return res, nil
}

// DryRun renders the request without sending it.
func (s *Setter) DryRun() (*RenderedRequest, error) {
	rr, err := s.Request.Render()
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return rr, nil
}
