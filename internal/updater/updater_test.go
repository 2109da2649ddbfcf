package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in      string
		want    Semver
		wantErr bool
	}{
		{in: "1.2.3", want: Semver{1, 2, 3}},
		{in: "v0.10.0", want: Semver{0, 10, 0}},
		{in: "dev", wantErr: true},
		{in: "1.2", wantErr: true},
		{in: "1.x.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemver(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.TrimPrefix(tt.in, "v"), got.String())
		})
	}
}

func TestSemverLessThan(t *testing.T) {
	assert.True(t, Semver{0, 1, 9}.LessThan(Semver{0, 2, 0}))
	assert.True(t, Semver{1, 0, 0}.LessThan(Semver{2, 0, 0}))
	assert.True(t, Semver{1, 1, 1}.LessThan(Semver{1, 1, 2}))
	assert.False(t, Semver{1, 1, 1}.LessThan(Semver{1, 1, 1}))
	assert.False(t, Semver{2, 0, 0}.LessThan(Semver{1, 9, 9}))
}

func TestParseSemverIgnoresSuffix(t *testing.T) {
	v, err := ParseSemver("v1.4.0-rc.2+linux")
	require.NoError(t, err)
	assert.Equal(t, Semver{1, 4, 0}, v)
	assert.Zero(t, v.Compare(Semver{1, 4, 0}))
}

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "maenggu-run/")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	body := `{"tag_name":"v0.4.0","html_url":"https://example.invalid/r/0.4.0","assets":[{"name":"maenggu-linux-amd64"}]}`

	tests := []struct {
		name      string
		current   string
		available bool
	}{
		{name: "older", current: "0.3.9", available: true},
		{name: "same", current: "0.4.0", available: false},
		{name: "newer", current: "1.0.0", available: false},
		{name: "dev build", current: "dev", available: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, http.StatusOK, body)
			c := &Checker{ReleasesURL: srv.URL, CurrentVersion: tt.current}

			res, err := c.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.Available)
			assert.Equal(t, "0.4.0", res.LatestVersion)
			assert.Equal(t, "https://example.invalid/r/0.4.0", res.ReleaseURL)
			assert.NotNil(t, FindAsset(res.Release, "maenggu-linux-amd64"))
		})
	}
}

func TestCheckNoReleases(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, "")
	res, err := (&Checker{ReleasesURL: srv.URL, CurrentVersion: "0.1.0"}).Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Nil(t, res.Release)
}

func TestCheckServerError(t *testing.T) {
	srv := releaseServer(t, http.StatusBadGateway, "")
	_, err := (&Checker{ReleasesURL: srv.URL, CurrentVersion: "0.1.0"}).Check(context.Background())
	assert.Error(t, err)
}

func TestAssetNames(t *testing.T) {
	suffix := runtime.GOOS + "-" + runtime.GOARCH
	assert.True(t, strings.HasPrefix(CLIAssetName(), "maenggu-"+suffix))
	assert.True(t, strings.HasPrefix(DaemonAssetName(), "maenggud-"+suffix))
	assert.Equal(t, runtime.GOOS == "windows", strings.HasSuffix(CLIAssetName(), ".exe"))
	assert.Nil(t, FindAsset(nil, "x"))
}

func TestReplaceBinary(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "maenggu")
	next := filepath.Join(dir, "maenggu.new")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o755))
	require.NoError(t, os.WriteFile(next, []byte("new"), 0o755))

	require.NoError(t, ReplaceBinary(dest, next))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, next)
	assert.NoFileExists(t, dest+".bak")
}
