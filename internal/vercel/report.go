package vercel

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/loykin/vercelenv/internal/common"
)

const (
	successFormat  = "\n✅ Successfully added %s to Vercel"
	failureMessage = "\n❌ Failed to add environment variable"
)

// Report prints the status line, the raw body and one outcome line.
// The outcome line is the same for every failing status.
func Report(w io.Writer, key string, res *ExecResult) error {
	if _, err := fmt.Fprintf(w, "Status: %d\n", res.StatusCode); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Response: %s\n", res.ResponseBody); err != nil {
		return err
	}
	if res.Succeeded {
		_, err := color.New(color.FgGreen).Fprintf(w, successFormat+"\n", key)
		return err
	}
	_, err := color.New(color.FgRed).Fprintln(w, failureMessage)
	return err
}

// ReportDryRun prints the request that would be sent, masking credentials with m.
func ReportDryRun(w io.Writer, rr *RenderedRequest, m *common.Masker) error {
	target := rr.URL
	if len(rr.Queries) > 0 {
		q := url.Values{}
		for k, v := range rr.Queries {
			q.Set(k, v)
		}
		target += "?" + q.Encode()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dry run: %s %s\n", rr.Method, target)
	headers := m.MaskHeaders(rr.Headers)
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&sb, "%s: %s\n", k, headers[k])
	}
	fmt.Fprintf(&sb, "Body: %s\n", rr.Body)
	_, err := io.WriteString(w, sb.String())
	return err
}
