package main_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/bcrypt"
	main "github.com/fwojciec/tagscrape/cmd/tagscrape"
	"github.com/fwojciec/tagscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServe runs the serve command in the background and returns the base
// URL once it listens. The server is stopped when the test ends.
func startServe(t *testing.T, args ...string) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	addrs := make(chan string, 1)

	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
			return "<!DOCTYPE html><h2>Served</h2>", nil
		},
	}
	m.OnListen = func(addr string) { addrs <- addr }

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx, append([]string{"serve", "--addr", "127.0.0.1:0"}, args...), io.Discard, io.Discard)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Error("serve did not stop")
		}
	})

	select {
	case addr := <-addrs:
		return "http://" + addr
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not start")
	}
	return ""
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.HashPassword("secret")
	require.NoError(t, err)

	for _, store := range []string{"file", "sqlite"} {
		t.Run(store+" store round trip", func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			base := startServe(t,
				"--data-dir", dir,
				"--store", store,
				"--user", "admin",
				"--password-hash", hash,
			)

			resp, err := http.Post(base+"/scrape", "application/json", strings.NewReader(`{"url":"https://example.com"}`))
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			req, err := http.NewRequest(http.MethodGet, base+"/data", http.NoBody)
			require.NoError(t, err)
			req.SetBasicAuth("admin", "secret")
			resp, err = http.DefaultClient.Do(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "Served")

			switch store {
			case "file":
				assert.FileExists(t, filepath.Join(dir, "extracted_data.json"))
				assert.FileExists(t, filepath.Join(dir, "request_logs.json"))
			case "sqlite":
				assert.FileExists(t, filepath.Join(dir, main.DBFileName))
			}
		})
	}

	t.Run("rejects protected routes without configured user", func(t *testing.T) {
		t.Parallel()

		base := startServe(t, "--data-dir", t.TempDir())

		req, err := http.NewRequest(http.MethodGet, base+"/logs", http.NoBody)
		require.NoError(t, err)
		req.SetBasicAuth("admin", "secret")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("enforces scrape rate limit", func(t *testing.T) {
		t.Parallel()

		base := startServe(t, "--data-dir", t.TempDir(), "--scrape-rate-limit", "1")

		codes := make([]int, 0, 2)
		for range 2 {
			resp, err := http.Post(base+"/scrape", "application/json", strings.NewReader(`{"url":"https://example.com"}`))
			require.NoError(t, err)
			resp.Body.Close()
			codes = append(codes, resp.StatusCode)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("requires password hash with user", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{
			"serve", "--addr", "127.0.0.1:0", "--data-dir", t.TempDir(), "--user", "admin",
		}, io.Discard, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--password-hash")
	})
}

func TestMain_Run_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	config := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"user": "admin"}`), 0644))

	err := main.NewMain().Run(context.Background(), []string{
		"--config", config, "serve", "--addr", "127.0.0.1:0", "--data-dir", dir,
	}, io.Discard, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password-hash")
}
