package vercel

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// DefaultSuccessCodes are the statuses reported as a successful add.
var DefaultSuccessCodes = []int{http.StatusOK, http.StatusCreated}

type ResponseSpec struct {
	// SuccessCodes overrides DefaultSuccessCodes when non-empty.
	SuccessCodes []int
}

// Succeeded reports whether status is one of the accepted codes.
// Every other status is a failure; no further classification is made.
func (r ResponseSpec) Succeeded(status int) bool {
	codes := r.SuccessCodes
	if len(codes) == 0 {
		codes = DefaultSuccessCodes
	}
	for _, c := range codes {
		if c == status {
			return true
		}
	}
	return false
}

// Inspect pulls informational fields out of a Vercel JSON body with gjson.
// Success bodies carry the created variable under "created" (object or array);
// error bodies carry {"error":{"code","message"}}. Non-JSON bodies yield empty strings.
func (r ResponseSpec) Inspect(body []byte) (envID, errCode, errMessage string) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return "", "", ""
	}
	parsed := gjson.ParseBytes(body)
	for _, path := range []string{"created.id", "created.0.id", "id"} {
		if v := parsed.Get(path); v.Exists() {
			envID = v.String()
			break
		}
	}
	errCode = parsed.Get("error.code").String()
	errMessage = parsed.Get("error.message").String()
	return envID, errCode, errMessage
}
