package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var (
	skipConfirm bool
	cleanAll    bool
)

// clearLogs is swapped out by tests so they never touch the real log.
var clearLogs = logger.ClearLogs

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Forget the saved login and remove log files",
	Long: `Forgets the remembered server, username and password hash and removes
the debug log.

With --all the whole config file is deleted, including theme, colors and
accepted terms. It will prompt for confirmation before proceeding unless
the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Delete the whole config file")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return runCleanWithReader(cfg, os.Stdin, cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(cfg *config.Config, input io.Reader, out io.Writer) error {
	login := cfg.GetLogin()
	hasLogin := login.Username != "" || login.Server != "" || login.PasswordHash != ""
	_, statErr := os.Stat(cfg.Path())
	hasFile := statErr == nil

	if !hasLogin && !(cleanAll && hasFile) {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will clean:")
	if cleanAll && hasFile {
		fmt.Fprintf(out, "  - The config file %s\n", cfg.Path())
	} else {
		fmt.Fprintf(out, "  - The saved login for %s on %s\n", login.Username, login.Server)
	}
	fmt.Fprintf(out, "  - The log file %s\n", logger.DefaultLogPath)

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if cleanAll && hasFile {
		if err := cfg.Remove(); err != nil {
			return fmt.Errorf("error removing config: %w", err)
		}
	} else {
		cfg.ClearLogin()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	logsCleared, err := clearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if cleanAll && hasFile {
		fmt.Fprintln(out, "  - config file removed")
	} else {
		fmt.Fprintln(out, "  - saved login forgotten")
	}
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
