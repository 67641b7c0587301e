package serve_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"fjacquet/camt-recon/cmd/root"
	"fjacquet/camt-recon/cmd/serve"
	"fjacquet/camt-recon/internal/config"
	"fjacquet/camt-recon/internal/container"
	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/server"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setupOnce sync.Once

func setup(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		root.Init()
		root.Cmd.AddCommand(serve.Cmd)
	})

	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "RECON_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	t.Setenv("HOME", t.TempDir())
	chdirForTest(t, t.TempDir())

	reset := func() {
		for _, fs := range []*pflag.FlagSet{root.Cmd.PersistentFlags(), serve.Cmd.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	}
	reset()
	t.Cleanup(func() {
		root.AppContainer = nil
		root.Cmd.SetOut(nil)
		root.Cmd.SetErr(nil)
		root.Cmd.SetArgs(nil)
		reset()
	})
}

func newContainer(t *testing.T, yamlConfig string) *container.Container {
	t.Helper()
	if yamlConfig != "" {
		require.NoError(t, os.WriteFile("recon.yaml", []byte(yamlConfig), 0o600))
	}
	cfg, err := config.InitializeConfig("")
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Long, server.PathReconcile)
	assert.NotNil(t, serve.Cmd.Flags().Lookup("addr"))
}

func TestNewServer_Routes(t *testing.T) {
	setup(t)
	srv := serve.NewServer(newContainer(t, ""))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.PathHealth, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewServer_UploadLimitFromConfig(t *testing.T) {
	setup(t)
	srv := serve.NewServer(newContainer(t, "server:\n  max_upload_mb: 1\n"))

	body := strings.Repeat("x", 2<<20)
	req := httptest.NewRequest(http.MethodPost, server.PathReconcile, strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=zzz")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServeCommand_StopsWhenContextDone(t *testing.T) {
	setup(t)
	var stderr bytes.Buffer
	root.Cmd.SetErr(&stderr)
	root.Cmd.SetArgs([]string{"serve", "--addr", freeAddr(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, root.Cmd.ExecuteContext(ctx))
}

func TestServeCommand_AddressInUse(t *testing.T) {
	setup(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	var stderr bytes.Buffer
	root.Cmd.SetErr(&stderr)
	root.Cmd.SetArgs([]string{"serve", "--addr", l.Addr().String()})
	assert.Error(t, root.Cmd.Execute())
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
