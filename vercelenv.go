package vercelenv

import (
	"context"
	"io"

	"github.com/loykin/vercelenv/internal/common"
	"github.com/loykin/vercelenv/internal/constants"
	"github.com/loykin/vercelenv/internal/vercel"
)

// Re-export commonly used types for public API

// Setter adds one environment variable to a Vercel project.
type Setter = vercel.Setter

// RequestSpec describes the create-env call.
type RequestSpec = vercel.RequestSpec

// Payload is the JSON body of the create-env call.
type Payload = vercel.Payload

// ExecResult is the outcome of Setter.Execute.
type ExecResult = vercel.ExecResult

type EnvType = vercel.EnvType

type Target = vercel.Target

const (
	TypeEncrypted = vercel.TypeEncrypted
	TypePlain     = vercel.TypePlain
	TypeSensitive = vercel.TypeSensitive

	TargetProduction  = vercel.TargetProduction
	TargetPreview     = vercel.TargetPreview
	TargetDevelopment = vercel.TargetDevelopment
)

// DefaultTargets returns production, preview and development in that order.
func DefaultTargets() []Target {
	out := make([]Target, 0, len(constants.DefaultTargets))
	for _, t := range constants.DefaultTargets {
		out = append(out, Target(t))
	}
	return out
}

// SetEnv sends one create-env request for projectID and returns the result.
// API failures are reported through ExecResult.Succeeded; transport failures are errors.
func SetEnv(ctx context.Context, token, projectID string, p Payload) (*ExecResult, error) {
	s := &Setter{Request: RequestSpec{ProjectID: projectID, Token: token, Payload: p}}
	return s.Execute(ctx)
}

// Report prints the status, raw body and outcome line for res.
func Report(w io.Writer, key string, res *ExecResult) error { return vercel.Report(w, key, res) }

// Logger aliases the structured logger used by the library.
type Logger = common.Logger

type LogLevel = common.LogLevel

const (
	LogLevelError = common.LogLevelError
	LogLevelWarn  = common.LogLevelWarn
	LogLevelInfo  = common.LogLevelInfo
	LogLevelDebug = common.LogLevelDebug
)

// NewLogger creates a text logger writing to w (stderr when nil).
func NewLogger(level LogLevel, w io.Writer) *Logger { return common.NewLogger(level, w) }

// SetDefaultLogger replaces the logger used by Setter.
func SetDefaultLogger(l *Logger) { common.SetDefaultLogger(l) }
