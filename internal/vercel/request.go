package vercel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/loykin/vercelenv/internal/constants"
	"github.com/loykin/vercelenv/internal/env"
	"github.com/loykin/vercelenv/internal/util"
)

type RequestSpec struct {
	APIBase   string
	ProjectID string
	Token     string
	// TeamID scopes the call to a team; sent as the teamId query parameter when set.
	TeamID string
	// Upsert asks the API to overwrite an existing variable with the same key and target.
	Upsert  bool
	Payload Payload
}

// Render builds the URL, headers, query params and JSON body.
// The endpoint is rendered from constants.EnvEndpointTemplate using Env.
func (r RequestSpec) Render() (*RenderedRequest, error) {
	projectID, ok := util.TrimEmptyCheck(r.ProjectID)
	if !ok {
		return nil, fmt.Errorf("project id is required")
	}
	token, ok := util.TrimEmptyCheck(r.Token)
	if !ok {
		return nil, fmt.Errorf("api token is required (set %s or --token)", constants.TokenEnvVar)
	}
	if err := r.Payload.Validate(); err != nil {
		return nil, err
	}

	e := env.FromMap(map[string]string{
		"api_base": strings.TrimRight(util.TrimWithDefault(r.APIBase, constants.DefaultAPIBase), "/"),
	})
	e.Set("project_id", url.PathEscape(projectID))
	endpoint, err := e.Render(constants.EnvEndpointTemplate)
	if err != nil {
		return nil, fmt.Errorf("render endpoint: %w", err)
	}

	body, err := encodeBody(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	queries := map[string]string{}
	if teamID, ok := util.TrimEmptyCheck(r.TeamID); ok {
		queries[constants.QueryTeamID] = teamID
	}
	if r.Upsert {
		queries[constants.QueryUpsert] = "true"
	}

	return &RenderedRequest{
		Method: constants.DefaultMethod,
		URL:    endpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"Content-Type":  "application/json",
		},
		Queries: queries,
		Body:    body,
	}, nil
}

// encodeBody marshals p without HTML escaping so values like "a&b" go out verbatim.
func encodeBody(p Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
