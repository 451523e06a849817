package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/loykin/vercelenv/internal/common"
)

type fakeAPI struct {
	srv      *httptest.Server
	hits     int32
	mu       sync.Mutex
	lastBody string
	lastPath string
}

func (f *fakeAPI) last() (path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPath, f.lastBody
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.hits, 1)
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lastBody = string(b)
		f.lastPath = r.URL.Path
		f.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// newTestViper isolates each test from the global viper, the environment and
// any config file in the working directory.
func newTestViper(t *testing.T, apiBase string) *viper.Viper {
	t.Helper()
	prevColor, prevLog, prevLogger := color.NoColor, logOutput, common.GetLogger()
	color.NoColor = true
	logOutput = io.Discard
	t.Cleanup(func() {
		color.NoColor = prevColor
		logOutput = prevLog
		common.SetDefaultLogger(prevLogger)
	})

	cfg := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(cfg, nil, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	v := viper.New()
	v.Set("config", cfg)
	v.Set("api_base", apiBase)
	v.Set("token", "test-token")
	return v
}

func TestRun_SuccessPrintsReport(t *testing.T) {
	api := newFakeAPI(t, http.StatusCreated, `{"created":{"id":"env_1"}}`)
	v := newTestViper(t, api.srv.URL)

	var out bytes.Buffer
	if err := run(context.Background(), v, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Status: 201\n" +
		"Response: {\"created\":{\"id\":\"env_1\"}}\n" +
		"\n✅ Successfully added NEXT_PUBLIC_GA_MEASUREMENT_ID to Vercel\n"
	if out.String() != want {
		t.Fatalf("output:\n got %q\nwant %q", out.String(), want)
	}
	path, body := api.last()
	if path != "/v10/projects/prj_QN3HywzNMl0lmPL5HXh6JWwE2i3g/env" {
		t.Fatalf("unexpected path %s", path)
	}
	wantBody := `{"key":"NEXT_PUBLIC_GA_MEASUREMENT_ID","value":"G-5B00STQFQL","type":"encrypted","target":["production","preview","development"]}`
	if body != wantBody {
		t.Fatalf("body:\n got %s\nwant %s", body, wantBody)
	}
}

func TestRun_APIFailureIsNotAnError(t *testing.T) {
	api := newFakeAPI(t, http.StatusForbidden, `{"error":{"code":"forbidden","message":"Not authorized"}}`)
	v := newTestViper(t, api.srv.URL)

	var out bytes.Buffer
	if err := run(context.Background(), v, &out); err != nil {
		t.Fatalf("API failure must not fail the command, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\n❌ Failed to add environment variable\n") {
		t.Fatalf("expected failure line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Status: 403\n") {
		t.Fatalf("expected status line, got %q", out.String())
	}
	if n := atomic.LoadInt32(&api.hits); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}

func TestRun_TransportFaultIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()
	v := newTestViper(t, base)

	var out bytes.Buffer
	if err := run(context.Background(), v, &out); err == nil {
		t.Fatalf("expected transport error")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed on a transport fault, got %q", out.String())
	}
}

func TestRun_DryRunSendsNothing(t *testing.T) {
	api := newFakeAPI(t, http.StatusCreated, `{}`)
	v := newTestViper(t, api.srv.URL)
	v.Set("dry_run", true)

	var out bytes.Buffer
	if err := run(context.Background(), v, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := atomic.LoadInt32(&api.hits); n != 0 {
		t.Fatalf("dry run must not send requests, got %d", n)
	}
	if strings.Contains(out.String(), "test-token") {
		t.Fatalf("token leaked in dry run: %s", out.String())
	}
	if !strings.HasPrefix(out.String(), "Dry run: POST "+api.srv.URL+"/v10/projects/") {
		t.Fatalf("unexpected dry run output %q", out.String())
	}
}

func TestRun_MissingTokenFailsBeforeSending(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "")
	api := newFakeAPI(t, http.StatusCreated, `{}`)
	v := newTestViper(t, api.srv.URL)
	v.Set("token", "")

	var out bytes.Buffer
	err := run(context.Background(), v, &out)
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected token error, got %v", err)
	}
	if n := atomic.LoadInt32(&api.hits); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestRun_ConfigFileAndOverrides(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	v := newTestViper(t, api.srv.URL)

	cfg := filepath.Join(t.TempDir(), "vercelenv.yaml")
	content := "vercel:\n  project_id: prj_file\nvariable:\n  key: FROM_FILE\n  value: file\n  target: [preview]\n"
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	v.Set("config", cfg)
	v.Set("value", "flag")

	var out bytes.Buffer
	if err := run(context.Background(), v, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	path, body := api.last()
	if path != "/v10/projects/prj_file/env" {
		t.Fatalf("project id from file not used: %s", path)
	}
	want := `{"key":"FROM_FILE","value":"flag","type":"encrypted","target":["preview"]}`
	if body != want {
		t.Fatalf("body:\n got %s\nwant %s", body, want)
	}
	if !strings.Contains(out.String(), "Successfully added FROM_FILE to Vercel") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_ExplicitMissingConfigFails(t *testing.T) {
	v := newTestViper(t, "http://127.0.0.1:1")
	v.Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err := run(context.Background(), v, io.Discard); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestInitCmd_WritesSample(t *testing.T) {
	p := filepath.Join(t.TempDir(), "vercelenv.yaml")
	var out bytes.Buffer
	initCmd.SetOut(&out)
	defer initCmd.SetOut(nil)

	if err := initCmd.RunE(initCmd, []string{p}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if strings.TrimSpace(out.String()) != p {
		t.Fatalf("expected path to be printed, got %q", out.String())
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if err := initCmd.RunE(initCmd, []string{p}); err == nil {
		t.Fatalf("expected error on existing file without --force")
	}
}

func TestExitHandler_LogFatalError(t *testing.T) {
	prev := common.GetLogger()
	defer common.SetDefaultLogger(prev)
	var logs bytes.Buffer
	common.SetDefaultLogger(common.NewLogger(common.LogLevelInfo, &logs))

	code := -1
	h := &DefaultExitHandler{exit: func(c int) { code = c }}
	h.LogFatalError(errors.New("dial tcp: connection refused"), "command execution failed", "hint", "Authorization: Bearer abc")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	out := logs.String()
	if !strings.Contains(out, "command execution failed") || !strings.Contains(out, "connection refused") {
		t.Fatalf("unexpected log output %q", out)
	}
	if strings.Contains(out, "Bearer abc") {
		t.Fatalf("token leaked into fatal log: %q", out)
	}
}
