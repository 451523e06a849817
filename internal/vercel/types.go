package vercel

import (
	"fmt"
	"strings"
)

// EnvType is the Vercel storage type of an environment variable.
type EnvType string

const (
	TypeEncrypted EnvType = "encrypted"
	TypePlain     EnvType = "plain"
	TypeSensitive EnvType = "sensitive"
	TypeSecret    EnvType = "secret"
	TypeSystem    EnvType = "system"
)

// Target is a deployment stage an environment variable applies to.
type Target string

const (
	TargetProduction  Target = "production"
	TargetPreview     Target = "preview"
	TargetDevelopment Target = "development"
)

var validTypes = []EnvType{TypeEncrypted, TypePlain, TypeSensitive, TypeSecret, TypeSystem}

var validTargets = []Target{TargetProduction, TargetPreview, TargetDevelopment}

// ParseEnvType validates s against the known Vercel env types.
func ParseEnvType(s string) (EnvType, error) {
	t := EnvType(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range validTypes {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid env type %q (valid: encrypted, plain, sensitive, secret, system)", s)
}

// ParseTargets validates every entry and keeps the given order.
func ParseTargets(in []string) ([]Target, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("at least one target is required")
	}
	out := make([]Target, 0, len(in))
	for _, s := range in {
		t := Target(strings.ToLower(strings.TrimSpace(s)))
		known := false
		for _, v := range validTargets {
			if t == v {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("invalid target %q (valid: production, preview, development)", s)
		}
		out = append(out, t)
	}
	return out, nil
}

// Payload is the JSON body of the create-env request. Field order is the wire order.
type Payload struct {
	Key    string   `json:"key"`
	Value  string   `json:"value"`
	Type   EnvType  `json:"type"`
	Target []Target `json:"target"`
}

// Validate checks the fields the API rejects outright.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("env key is required")
	}
	if _, err := ParseEnvType(string(p.Type)); err != nil {
		return err
	}
	if len(p.Target) == 0 {
		return fmt.Errorf("at least one target is required")
	}
	return nil
}

// RenderedRequest is a fully resolved request ready to be sent.
type RenderedRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Queries map[string]string
	Body    []byte
}

// ExecResult contains the outcome of Setter.Execute.
type ExecResult struct {
	StatusCode int
	// Raw response body exactly as returned by the API.
	ResponseBody string
	// Succeeded is true for the accepted status codes (200 and 201 by default).
	Succeeded bool
	// Informational fields extracted from the body when present; used for logging only.
	EnvID        string
	ErrorCode    string
	ErrorMessage string
}
