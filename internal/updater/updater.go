// Package updater checks for updates via GitHub Releases and replaces binaries.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
)

// DefaultReleasesURL is the latest-release endpoint for the project.
const DefaultReleasesURL = "https://api.github.com/repos/hazzzi/maenggu-run/releases/latest"

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a downloadable file in a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// UpdateResult contains the result of an update check.
type UpdateResult struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Release        *ReleaseInfo
}

// Checker queries a releases endpoint.
type Checker struct {
	ReleasesURL    string
	Client         *http.Client
	CurrentVersion string
}

// NewChecker returns a checker for the public releases endpoint.
func NewChecker() *Checker {
	return &Checker{
		ReleasesURL:    DefaultReleasesURL,
		Client:         &http.Client{Timeout: 15 * time.Second},
		CurrentVersion: buildinfo.Version,
	}
}

// CheckForUpdate queries GitHub Releases for a newer version.
func CheckForUpdate(ctx context.Context) (*UpdateResult, error) {
	return NewChecker().Check(ctx)
}

// Check fetches the latest release and compares it with CurrentVersion.
func (c *Checker) Check(ctx context.Context) (*UpdateResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReleasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", buildinfo.AppName+"/"+c.CurrentVersion)

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return &UpdateResult{CurrentVersion: c.CurrentVersion}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	latest, err := ParseSemver(latestVersion)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", latestVersion, err)
	}

	result := &UpdateResult{
		CurrentVersion: c.CurrentVersion,
		LatestVersion:  latestVersion,
		ReleaseURL:     release.HTMLURL,
		Release:        &release,
	}

	current, err := ParseSemver(c.CurrentVersion)
	if err != nil {
		// "dev" and other unparseable builds are treated as older
		result.Available = true
		return result, nil
	}
	result.Available = current.LessThan(latest)
	return result, nil
}

func (c *Checker) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// AssetName returns the release asset name for binary on the running platform.
func AssetName(binary string) string {
	name := fmt.Sprintf("%s-%s-%s", binary, runtime.GOOS, runtime.GOARCH)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// CLIAssetName returns the expected asset name for the CLI binary.
func CLIAssetName() string {
	return AssetName("maenggu")
}

// DaemonAssetName returns the expected asset name for the daemon binary.
func DaemonAssetName() string {
	return AssetName("maenggud")
}

// FindAsset finds an asset by name in a release.
func FindAsset(release *ReleaseInfo, name string) *Asset {
	if release == nil {
		return nil
	}
	for i := range release.Assets {
		if release.Assets[i].Name == name {
			return &release.Assets[i]
		}
	}
	return nil
}

// DownloadAsset downloads a release asset to a temp file and returns the path.
func DownloadAsset(ctx context.Context, asset *Asset) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.BrowserDownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", buildinfo.AppName+"-update-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}

	tmpFile.Close()

	if err := os.Chmod(tmpFile.Name(), 0o755); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	return tmpFile.Name(), nil
}

// ReplaceBinary replaces the binary at destPath with the one at newPath,
// restoring the original if the swap fails.
func ReplaceBinary(destPath, newPath string) error {
	destPath, err := filepath.EvalSymlinks(destPath)
	if err != nil {
		return fmt.Errorf("resolve symlink: %w", err)
	}

	bakPath := destPath + ".bak"

	os.Remove(bakPath)

	if err := os.Rename(destPath, bakPath); err != nil {
		return fmt.Errorf("backup old binary: %w", err)
	}

	if err := os.Rename(newPath, destPath); err != nil {
		_ = os.Rename(bakPath, destPath)
		return fmt.Errorf("install new binary: %w", err)
	}

	// A running executable cannot be deleted on Windows; the backup is
	// removed on the next update instead.
	os.Remove(bakPath)

	return nil
}
