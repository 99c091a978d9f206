package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var errRepositoriesFailed = errors.New("one or more repositories failed")

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "pkgrecon <pkglist> <output>",
		Short: "Reconcile a distribution manifest against repository contents",
		Long: "Walk every repository listed in a distribution manifest, locate its package manifest files, " +
			"match their folders against the declared packages and write the raw URL of every match.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Manifest, cfg.Output = args[0], args[1]

			logger := newLogger(stderr, cfg.Log)
			ctx := logger.WithContext(cmd.Context())

			hosting := NewHostingClient(cfg.APIURL, cfg.GitHubToken)
			summary, err := reconcileAll(ctx, cfg, hosting)
			if err != nil {
				return err
			}
			printReport(stdout, summary)

			if cfg.FailOnError && len(summary.Failures) > 0 {
				return errRepositoriesFailed
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().String("log-format", "auto", "log format (auto, console, json)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().String("config", "", "config file (yaml)")

	rootCmd.Flags().Int("max-threads", defaultMaxThreads, "maximum number of repositories processed concurrently")
	rootCmd.Flags().String("filename", defaultFilename, "manifest file name to search for")
	rootCmd.Flags().Duration("timeout", defaultTimeout, "per repository timeout (0 disables)")
	rootCmd.Flags().String("github-api", DefaultAPIURL, "hosting API base URL used to resolve default branches")
	rootCmd.Flags().Bool("fail-on-error", false, "exit non-zero when any repository failed")

	distroCmd := &cobra.Command{
		Use:   "distro <distro>...",
		Short: "Generate manifests from rosdistro distribution files",
		Long:  "Download the distribution.yaml of each named distro and write a {distro}_packages.yaml manifest.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.Log)
			ctx := logger.WithContext(cmd.Context())

			client := NewHostingClient(cfg.APIURL, cfg.GitHubToken)
			for _, distro := range args {
				if _, err := generateManifest(ctx, client, cfg.IndexURL, distro, cfg.OutputDir, stdout); err != nil {
					return err
				}
			}
			return nil
		},
	}
	distroCmd.Flags().String("index-url", defaultIndexURL, "base URL of the rosdistro index")
	distroCmd.Flags().String("output-dir", ".", "directory to write manifests into")

	rootCmd.AddCommand(distroCmd)
	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
