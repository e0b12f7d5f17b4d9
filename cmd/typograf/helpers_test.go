package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake service and environment
// ---------------------------------------------------------------------------

// serviceReply is what the fake service returns for any text: the quotes
// come back as french entities, escaped once more as the real service does.
const serviceReply = "He said &amp;laquo;hello&amp;raquo;."

// fakeService is an httptest SOAP endpoint counting its calls.
type fakeService struct {
	*httptest.Server
	calls atomic.Int32
}

// newFakeService answers every request with serviceReply, or with status
// when it is not 200.
func newFakeService(t *testing.T, status int) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = io.WriteString(w, "<soap:Envelope><soap:Body><ProcessTextResponse>"+
			"<ProcessTextResult>"+serviceReply+"</ProcessTextResult>"+
			"</ProcessTextResponse></soap:Body></soap:Envelope>")
	}))
	t.Cleanup(fs.Close)
	return fs
}

// clipboardStub records copied text.
type clipboardStub struct {
	mu     sync.Mutex
	copied string
	err    error
}

func (c *clipboardStub) write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied = text
	return c.err
}

// testEnv bundles an Environment with its captured streams.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	clipboard *clipboardStub
}

// newTestEnv returns an environment reading stdin. stdin counts as piped
// when it is not empty.
func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		clipboard: &clipboardStub{},
	}
	te.Environment = &Environment{
		Stdin:              strings.NewReader(stdin),
		Stdout:             te.stdout,
		Stderr:             te.stderr,
		StdinPiped:         func() bool { return stdin != "" },
		CopyToClipboard:    te.clipboard.write,
		ClipboardAvailable: func() bool { return true },
	}
	return te
}

// runCLI runs the CLI with args after the program name.
func runCLI(env *testEnv, args ...string) int {
	return runMain(append([]string{"typograf"}, args...), env.Environment)
}
