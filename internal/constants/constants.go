package constants

import (
	"net/http"
)

// API Constants
const (
	DefaultAPIBase = "https://api.vercel.com"
	// EnvEndpointTemplate is rendered with the template env; api_base and project_id must be set.
	EnvEndpointTemplate = "{{.api_base}}/v10/projects/{{.project_id}}/env"
	DefaultMethod       = http.MethodPost

	QueryTeamID = "teamId"
	QueryUpsert = "upsert"
)

// Variable defaults
const (
	DefaultProjectID = "prj_QN3HywzNMl0lmPL5HXh6JWwE2i3g"
	DefaultKey       = "NEXT_PUBLIC_GA_MEASUREMENT_ID"
	DefaultValue     = "G-5B00STQFQL"
	DefaultType      = "encrypted"
)

// DefaultTargets lists the deployment stages, in request order.
var DefaultTargets = []string{"production", "preview", "development"}

// Environment variable names
const (
	EnvPrefix   = "VERCELENV"
	TokenEnvVar = "VERCEL_TOKEN"
)

// Config Constants
const (
	DefaultConfigPath = "./vercelenv.yaml"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)
