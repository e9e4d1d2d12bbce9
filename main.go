// Package main is the oelmerger binary. It serves a web UI that merges the
// passbands of registered OELs onto a fixed optical frequency grid and shows
// which grid intervals every OEL leaves free.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"oelmerger/internal/oel"
	"oelmerger/internal/passband"
	"oelmerger/internal/report"
	"oelmerger/internal/version"
)

const appName = "oelmerger"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Merge OEL passbands onto the optical frequency grid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(serveCmd(&configPath), parseCmd(&configPath), exportCmd(&configPath))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit %s, built %s)\n", appName, version.Version, version.GitSHA, version.BuildTime)
		},
	})
	return cmd
}

// loadValidConfig loads the file at path, applies flag overrides, validates.
func loadValidConfig(cmd *cobra.Command, path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f := cmd.Flags().Lookup("listen"); f != nil && f.Changed {
		cfg.Server.Listen = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func serveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(os.Stderr, cfg.Log.Level)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().String("listen", ":8080", "Listen address")
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func serve(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	srv, err := NewServer(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", cfg.Server.Listen, "version", version.Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func parseCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse PASSBAND",
		Short: "Show how a passband is read and which grid points it frees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			g, err := cfg.NewGrid()
			if err != nil {
				return err
			}
			segs := passband.Parse(args[0])
			writeSegments(cmd.OutOrStdout(), segs)
			for _, p := range passband.Expand(segs, g).Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func writeSegments(w io.Writer, segs []passband.Segment) {
	for _, seg := range segs {
		switch seg.Kind {
		case passband.Range:
			fmt.Fprintf(w, "# range   %q: %g-%g\n", seg.Raw, seg.Low, seg.High)
		case passband.Literal:
			fmt.Fprintf(w, "# literal %q: %g\n", seg.Raw, seg.Low)
		default:
			fmt.Fprintf(w, "# ignored %q\n", seg.Raw)
		}
	}
}

func exportCmd(configPath *string) *cobra.Command {
	var (
		oelArgs []string
		input   string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the merged spreadsheet for OELs given on the command line or in a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			g, err := cfg.NewGrid()
			if err != nil {
				return err
			}
			reg := oel.NewRegistry(g)

			if input != "" {
				if err := registerFile(reg, input, cfg.Server.MaxImportRows); err != nil {
					return err
				}
			}
			for _, arg := range oelArgs {
				name, text, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("--oel %q: want NAME=PASSBAND", arg)
				}
				if _, err := reg.Register(name, text); err != nil {
					return fmt.Errorf("--oel %q: %w", arg, err)
				}
			}

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := report.WriteWorkbook(out, reg.Matrix(), cfg.ReportOptions()); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d OELs)\n", output, reg.Len())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&oelArgs, "oel", nil, "OEL as NAME=PASSBAND (repeatable)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV or XLSX file of OELs (name, passband)")
	cmd.Flags().StringVarP(&output, "output", "o", "oel_merged.xlsx", "Output .xlsx path")
	return cmd
}

func registerFile(reg *oel.Registry, path string, maxRows int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	entries, err := report.ReadEntries(f, path, maxRows)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, e := range entries {
		if _, err := reg.Register(e.Name, e.Passband); err != nil {
			slog.Warn("skipping OEL", "entry", e.String(), "error", err)
		}
	}
	return nil
}
