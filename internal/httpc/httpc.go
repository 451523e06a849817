package httpc

import (
	"crypto/tls"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/loykin/vercelenv/internal/util"
)

type Httpc struct {
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's TLS settings.
// Retries are always disabled: one call to Execute is one request on the wire.
// Defaults: MinVersion TLS1.2 when MinVersion is zero.
func (h *Httpc) New() *resty.Client {
	c := resty.New().SetRetryCount(0)
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 && (cfg.MaxVersion == 0 || cfg.MaxVersion >= tls.VersionTLS12) {
		cfg.MinVersion = tls.VersionTLS12
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// ParseTLSVersion maps "1.0".."1.3" (with or without a "tls" prefix) to the
// crypto/tls constant. Empty input yields 0.
func ParseTLSVersion(s string) (uint16, error) {
	switch util.TrimAndLower(s) {
	case "":
		return 0, nil
	case "1.0", "tls1.0":
		return tls.VersionTLS10, nil
	case "1.1", "tls1.1":
		return tls.VersionTLS11, nil
	case "1.2", "tls1.2":
		return tls.VersionTLS12, nil
	case "1.3", "tls1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("invalid tls version: %q (valid: 1.0, 1.1, 1.2, 1.3)", s)
	}
}

// BuildTLSConfig returns nil when nothing is customized so resty keeps its
// default transport.
func BuildTLSConfig(insecure bool, minVersion, maxVersion string) (*tls.Config, error) {
	minV, err := ParseTLSVersion(minVersion)
	if err != nil {
		return nil, err
	}
	maxV, err := ParseTLSVersion(maxVersion)
	if err != nil {
		return nil, err
	}
	if minV != 0 && maxV != 0 && minV > maxV {
		return nil, fmt.Errorf("min tls version %s is greater than max %s", minVersion, maxVersion)
	}
	if !insecure && minV == 0 && maxV == 0 {
		return nil, nil
	}
	// #nosec G402 -- InsecureSkipVerify is an explicit user opt-in
	return &tls.Config{InsecureSkipVerify: insecure, MinVersion: minV, MaxVersion: maxV}, nil
}
