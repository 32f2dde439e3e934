package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pbaille/gallery/internal/annotate"
	"github.com/pbaille/gallery/internal/api"
	"github.com/pbaille/gallery/internal/chart"
	"github.com/pbaille/gallery/internal/config"
	"github.com/pbaille/gallery/internal/domain"
	"github.com/pbaille/gallery/internal/gallery"
	"github.com/pbaille/gallery/internal/logging"
	"github.com/pbaille/gallery/internal/source"
	"github.com/pbaille/gallery/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit statuses besides the generic 1
const (
	exitInputNotFound = 2
	exitWriteFailure  = 3
)

// exitError carries a specific process status up to main
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var (
	configFile string
	cfg        *config.Config
	log        *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()

	rootCmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Local server and tooling for the three.js drawing gallery",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			log, err = logging.New(cfg.LogLevel)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				log.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./gallery.yaml)")
	pf.String("root", defaults["root"].(string), "content root directory")
	pf.String("imagery-dir", defaults["imagery-dir"].(string), "directory of exported drawings, relative to root")
	pf.String("db", defaults["db"].(string), "run history database path")
	pf.String("log-level", defaults["log-level"].(string), "log level (debug, info, warn, error)")

	rootCmd.AddCommand(annotateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(animationsCmd())
	rootCmd.AddCommand(chartSampleCmd())

	return rootCmd
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.DBPath)
}

func annotateCmd() *cobra.Command {
	var from, out string
	var noRecord bool

	cmd := &cobra.Command{
		Use:   "annotate [name]",
		Short: "Annotate the exported SVG of a drawing with shape types",
		Long: "Reads <imagery-dir>/<name>_out.svg, infers the type of every grouped path\n" +
			"and writes <imagery-dir>/<name>_out_annotated.svg.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			in, dst, err := source.ImageryPaths(cfg.ImageryDir, name)
			if err != nil {
				return err
			}
			if from != "" {
				in = from
			}
			if out != "" {
				dst = out
			}

			data, err := source.Load(in)
			if errors.Is(err, source.ErrNotFound) {
				fmt.Printf("File not found: %s\n", in)
				return &exitError{code: exitInputNotFound, err: err}
			}
			if err != nil {
				return err
			}

			annotated, summary, err := annotate.New(log).Process(data, annotate.Options{Minify: cfg.Minify})
			if err != nil {
				return err
			}

			if err := source.WriteFile(dst, annotated); err != nil {
				fmt.Printf("Error writing file: %v\n", err)
				return &exitError{code: exitWriteFailure, err: err}
			}

			fmt.Printf("Annotated %s -> %s\n", in, dst)
			printSummary(summary)

			if noRecord {
				return nil
			}

			s, err := getStore()
			if err != nil {
				fmt.Printf("(run not recorded: %v)\n", err)
				return nil
			}
			defer s.Close()

			run, err := s.SaveRun(name, in, dst, summary)
			if err != nil {
				fmt.Printf("(run not recorded: %v)\n", err)
				return nil
			}
			fmt.Printf("Recorded run: %s\n", run.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read the drawing from this path or URL instead")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the annotated drawing here instead")
	cmd.Flags().Bool("minify", false, "minify the annotated output")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "do not record the run in the history database")
	return cmd
}

func printSummary(summary domain.Summary) {
	fmt.Printf("Paths:   %d\n", summary.Paths)
	for _, t := range domain.ShapeTypes {
		if n := summary.Counts[t]; n > 0 {
			fmt.Printf("  %-7s %d\n", t, n)
		}
	}
	if summary.Unknown > 0 {
		fmt.Printf("  unknown %d\n", summary.Unknown)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gallery server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				log.Warn("run history disabled", zap.Error(err))
				s = nil
			}
			// Note: don't defer s.Close() as server runs indefinitely

			server := api.New(s, api.Options{
				Addr:           cfg.Addr,
				Root:           cfg.Root,
				ThreeJSVersion: cfg.ThreeJSVersion,
			}, log)
			return server.Run()
		},
	}

	cmd.Flags().StringP("addr", "a", config.Defaults()["addr"].(string), "server address")
	cmd.Flags().String("threejs-version", config.Defaults()["threejs-version"].(string), "three.js release loaded by the pages")
	return cmd
}

func runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent annotation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(limit, 0)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs yet. Use 'gallery annotate' to create one.")
				return nil
			}

			for _, r := range runs {
				fmt.Printf("%s  %s  %-20s %d paths, %d unknown\n",
					r.ID[:8], r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Name, r.Summary.Paths, r.Summary.Unknown)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [id]",
		Short: "Show the shapes recorded by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.FindRun(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:      %s\n", run.ID)
			fmt.Printf("Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Drawing: %s\n", run.Name)
			fmt.Printf("Source:  %s\n", run.Source)
			fmt.Printf("Output:  %s\n", run.Output)
			printSummary(run.Summary)

			if len(run.Summary.Shapes) > 0 {
				fmt.Printf("\nShapes:\n")
				for _, sh := range run.Summary.Shapes {
					line := fmt.Sprintf("  %-7s %s", sh.Type, orDash(sh.PathID))
					if sh.GroupID != "" {
						line += " (in " + sh.GroupID + ")"
					}
					if sh.Fill != "" {
						line += " fill=" + sh.Fill
					}
					fmt.Println(line)
				}
			}

			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func animationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "animations",
		Short: "List the registered drawings",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range gallery.Keys() {
				a, _ := gallery.Lookup(k)
				marker := " "
				if k == gallery.DefaultKey {
					marker = "*"
				}
				sources := append([]string(nil), a.DataSources...)
				sort.Strings(sources)
				fmt.Printf("%s %-10s %-10s %s\n", marker, k, a.Name, strings.Join(sources, ","))
			}
			return nil
		},
	}
}

func chartSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart-sample",
		Short: "Write the sample chart data file under <root>/data",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := chart.Sample().Write(filepath.Join(cfg.Root, "data"))
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
