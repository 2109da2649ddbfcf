package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hazzzi/maenggu-run/internal/config"
)

// daemonBinaryName is the daemon executable for this platform.
func daemonBinaryName() string {
	if runtime.GOOS == "windows" {
		return "maenggud.exe"
	}
	return "maenggud"
}

// EnsureDaemon makes sure the daemon is running, starting it if necessary.
func EnsureDaemon() error {
	running, _, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return nil
	}
	return startDaemon()
}

// startDaemon starts the daemon process in the background.
func startDaemon() error {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(daemonPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	_ = cmd.Process.Release()

	if !waitForDaemon(true, 5*time.Second) {
		return fmt.Errorf("daemon failed to start within timeout")
	}
	return nil
}

// waitForDaemon polls daemon.yaml until the daemon reaches the wanted state.
func waitForDaemon(running bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
		ok, _, err := config.IsDaemonRunning()
		if err == nil && ok == running {
			return true
		}
	}
	return false
}

// findDaemonBinary locates the maenggud binary.
func findDaemonBinary() (string, error) {
	name := daemonBinaryName()

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	// Next to the CLI, which is how release archives ship.
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	local := filepath.Join("build", name)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", name)
}
