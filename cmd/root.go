// Package cmd implements the command-line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cosmits/check-truenas-extended-play/internal/checks"
	"github.com/Cosmits/check-truenas-extended-play/internal/checks/pool"
	"github.com/Cosmits/check-truenas-extended-play/internal/truenas"
)

// Version is set at build time via -ldflags "-X github.com/Cosmits/check-truenas-extended-play/cmd.Version=..."
var Version = "dev"

// exitCode holds the monitoring-plugin exit code produced by a completed
// check run. Usage errors never reach it; those exit 1 via cobra's error path.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "check-truenas-extended-play",
	Short: "Monitoring check for TrueNAS/FreeNAS appliances",
	Long: `Checks a TrueNAS/FreeNAS server using the v2.0 REST API and reports
the result as a standard monitoring-plugin verdict: one line on stdout and
an exit code of 0 (OK), 1 (WARNING), 2 (CRITICAL), or 3 (UNKNOWN).

Supported check types: ` + strings.Join(checks.Types(), ", ") + `.

Authentication uses the username and password when a username is given,
and otherwise treats the password value as an API key.`,
	RunE: runCheck,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.Version = Version

	rootCmd.Flags().StringP("hostname", "H", "", "Hostname or IP address of the appliance (required)")
	rootCmd.Flags().StringP("user", "u", "", "Username; if not specified the password is used as an API key")
	rootCmd.Flags().StringP("password", "p", "", "Password or API key (required)")
	rootCmd.Flags().StringP("type", "t", "", "Check type: "+strings.Join(checks.Types(), ", ")+" (required)")
	rootCmd.Flags().String("zpool-name", pool.AllPools, "For the zpool check, the pool to examine")
	rootCmd.Flags().Bool("no-ssl", false, "Use HTTP instead of HTTPS")
	rootCmd.Flags().Bool("no-verify-cert", false, "Do not verify the server TLS certificate")
	rootCmd.Flags().Bool("ignore-dismissed-alerts", false, "Skip alerts already dismissed in the appliance UI")
	rootCmd.Flags().Duration("timeout", truenas.DefaultTimeout, "Request timeout")
	rootCmd.Flags().BoolP("debug", "d", false, "Log debugging information to stderr")

	rootCmd.MarkFlagRequired("hostname")
	rootCmd.MarkFlagRequired("password")
	rootCmd.MarkFlagRequired("type")
}

func runCheck(cmd *cobra.Command, args []string) error {
	hostname, _ := cmd.Flags().GetString("hostname")
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	checkType, _ := cmd.Flags().GetString("type")
	zpoolName, _ := cmd.Flags().GetString("zpool-name")
	noSSL, _ := cmd.Flags().GetBool("no-ssl")
	noVerifyCert, _ := cmd.Flags().GetBool("no-verify-cert")
	ignoreDismissed, _ := cmd.Flags().GetBool("ignore-dismissed-alerts")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	debug, _ := cmd.Flags().GetBool("debug")

	logger := newLogger(debug)
	logger.Debug("starting check",
		"version", Version,
		"hostname", hostname,
		"type", checkType,
		"zpool_name", zpoolName,
		"use_tls", !noSSL,
		"verify_cert", !noVerifyCert,
	)

	client := truenas.NewClient(truenas.Config{
		Host:       hostname,
		Username:   user,
		Secret:     password,
		UseTLS:     !noSSL,
		VerifyCert: !noVerifyCert,
		Timeout:    timeout,
		Logger:     logger,
	})

	verdict := checks.Run(context.Background(), client, checks.Request{
		Category:        checkType,
		PoolName:        zpoolName,
		IgnoreDismissed: ignoreDismissed,
	})

	fmt.Fprintln(cmd.OutOrStdout(), verdict.Line())
	exitCode = verdict.Severity.ExitCode()
	return nil
}

// newLogger builds the stderr logger threaded into the client. Debug logs
// must never land on stdout, which carries exactly one verdict line.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
