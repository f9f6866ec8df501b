// Package main is the CLI entry point for dwmmon.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imaniceman/dwm-monitor/internal/config"
	"github.com/imaniceman/dwm-monitor/internal/domain"
	"github.com/imaniceman/dwm-monitor/internal/infra"
	"github.com/imaniceman/dwm-monitor/internal/service"
)

var (
	// Version info (set via ldflags)
	Version   = "1.0.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dwmmon",
	Short: "Watchdog that keeps dwm.exe alive and within its memory budget",
	Long: `dwmmon is a background service that monitors the dwm.exe process.
It polls the process table on a fixed interval, restarts dwm.exe when its
memory usage exceeds the configured threshold, and waits for the system to
relaunch it whenever it disappears.

The memory threshold is read from config.cfg next to the executable; the
file is created with a 1000 MiB default on first run.`,
	Version: Version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the watchdog (service entry point / foreground)",
	Long: `Runs the monitor loop. This is the entry point the host service
manager invokes; when launched from a terminal it runs in the foreground
until interrupted.`,
	RunE: runRun,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the watchdog with the host service manager",
	RunE:  makeControl("install"),
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the watchdog from the host service manager",
	RunE:  makeControl("uninstall"),
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the registered service",
	RunE:  makeControl("start"),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the registered service",
	RunE:  makeControl("stop"),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var jsonOutput bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the target process and configured threshold",
	Long:  `Shows whether dwm.exe is currently running, its memory usage, and the configured threshold.`,
	RunE:  runStatus,
}

func init() {
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	return service.Run()
}

func makeControl(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := service.Control(action); err != nil {
			return fmt.Errorf("%s %s: %w", action, service.Name, err)
		}
		fmt.Printf("%s: %s OK\n", service.Name, action)
		return nil
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("\n=== dwmmon Status ===")

	cfgPath, err := infra.ExecDirPath(config.FileName)
	if err != nil {
		return err
	}
	threshold, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Printf("Target:    %s\n", domain.TargetImageName)
	fmt.Printf("Threshold: %d MB\n", threshold/1024/1024)

	inspector := infra.NewProcessInspector()
	target, err := inspector.FindTarget(domain.TargetImageName)
	if err != nil {
		return fmt.Errorf("inspect processes: %w", err)
	}

	if target == nil {
		fmt.Println("Status:    NOT RUNNING")
		fmt.Println("=====================")
		return nil
	}

	fmt.Printf("Status:    RUNNING (pid %d)\n", target.PID)
	if usage, err := inspector.MemoryUsage(target.PID); err == nil {
		fmt.Printf("Memory:    %d MB\n", usage/1024/1024)
	} else {
		fmt.Println("Memory:    unavailable")
	}

	fmt.Println("=====================")
	return nil
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("dwmmon %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
