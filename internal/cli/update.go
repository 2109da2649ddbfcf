package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/updater"
)

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update maenggu and maenggud to the latest version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		fmt.Fprintln(out, styleHint.Render("Checking for updates..."))

		result, err := updater.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}

		if !result.Available {
			fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("Already up to date (v%s).", result.CurrentVersion)))
			return nil
		}

		fmt.Fprintln(out, styleUpdate.Render(fmt.Sprintf("Update available: v%s -> v%s", result.CurrentVersion, result.LatestVersion)))
		fmt.Fprintln(out, field("Release", result.ReleaseURL))
		if updateCheckOnly {
			return nil
		}

		cliAsset := updater.FindAsset(result.Release, updater.CLIAssetName())
		daemonAsset := updater.FindAsset(result.Release, updater.DaemonAssetName())
		if cliAsset == nil {
			return fmt.Errorf("CLI binary not found in release (expected %s)", updater.CLIAssetName())
		}
		if daemonAsset == nil {
			return fmt.Errorf("daemon binary not found in release (expected %s)", updater.DaemonAssetName())
		}

		daemonWasRunning, _, _ := config.IsDaemonRunning()
		if daemonWasRunning {
			fmt.Fprintln(out, "Stopping daemon...")
			if err := runDaemonStop(cmd, nil); err != nil {
				fmt.Fprintln(out, styleWarning.Render("Warning: failed to stop daemon: "+err.Error()))
			}
		}

		fmt.Fprintf(out, "Downloading CLI (%s)...\n", cliAsset.Name)
		cliTmpPath, err := updater.DownloadAsset(ctx, cliAsset)
		if err != nil {
			return fmt.Errorf("failed to download CLI: %w", err)
		}
		defer os.Remove(cliTmpPath)

		fmt.Fprintf(out, "Downloading daemon (%s)...\n", daemonAsset.Name)
		daemonTmpPath, err := updater.DownloadAsset(ctx, daemonAsset)
		if err != nil {
			return fmt.Errorf("failed to download daemon: %w", err)
		}
		defer os.Remove(daemonTmpPath)

		selfPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to find self: %w", err)
		}
		selfPath, err = filepath.EvalSymlinks(selfPath)
		if err != nil {
			return fmt.Errorf("failed to resolve self: %w", err)
		}

		fmt.Fprintln(out, "Installing CLI...")
		if err := updater.ReplaceBinary(selfPath, cliTmpPath); err != nil {
			return fmt.Errorf("failed to update CLI: %w", err)
		}

		daemonBinPath, err := findDaemonBinary()
		if err != nil {
			return fmt.Errorf("failed to find daemon binary: %w", err)
		}

		fmt.Fprintln(out, "Installing daemon...")
		if err := updater.ReplaceBinary(daemonBinPath, daemonTmpPath); err != nil {
			return fmt.Errorf("failed to update daemon: %w", err)
		}

		if daemonWasRunning {
			fmt.Fprintln(out, "Restarting daemon...")
			if err := startDaemon(); err != nil {
				fmt.Fprintln(out, styleWarning.Render("Warning: failed to restart daemon: "+err.Error()))
			}
		}

		fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("Updated to v%s.", result.LatestVersion)))
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check, do not install")
}
