package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	typstformula "github.com/hellenic-development/typst-formula"
	"github.com/hellenic-development/typst-formula/pkg/config"
	"github.com/hellenic-development/typst-formula/pkg/inkscape"
	"github.com/hellenic-development/typst-formula/pkg/typst"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = typstformula.Version

var (
	typstCode     string
	fontSize      int
	page          string
	typstBin      string
	outputFile    string
	timeout       time.Duration
	label         string
	configFile    string
	verbose       bool
	keepWorkspace bool
	inxCommand    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Compiler failures were already reported through the logger.
		if !typst.IsAbort(err) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typst-formula [document.svg]",
		Short: "Render a Typst formula into an SVG drawing",
		Long: "An Inkscape extension that compiles Typst markup with the typst CLI and inserts the result " +
			"into the current layer of the drawing as editable paths. The drawing is read from the given file " +
			"(or stdin) and the modified drawing is written to stdout.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Inkscape passes selection and id flags this extension does not use.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	}

	rootCmd.Flags().StringVar(&typstCode, "typst_code", typst.DefaultCode, "Typst markup to render")
	rootCmd.Flags().IntVar(&fontSize, "font_size", typst.DefaultFontSize, "Text size in pt")
	rootCmd.Flags().StringVar(&page, "page", typst.DefaultPage, fmt.Sprintf("Page preset, one of %v", typst.Pages()))
	rootCmd.PersistentFlags().StringVar(&typstBin, "typst-bin", typst.DefaultBinary, "typst executable name or path")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the drawing to this file instead of stdout")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort the compiler after this long (0 waits forever)")
	rootCmd.Flags().StringVar(&label, "label", "Typst Formula", "Label of the inserted group")
	rootCmd.Flags().BoolVar(&keepWorkspace, "keep-workspace", false, "Keep the temporary directory for debugging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML file with defaults (env "+config.EnvPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress to stderr")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "typst-formula version %s\n", version)
		},
	}

	inxCmd := &cobra.Command{
		Use:   "inx",
		Short: "Print the Inkscape extension descriptor (.inx)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inkscape.WriteDescriptor(cmd.OutOrStdout(), inkscape.DescriptorOptions{
				Command:     inxCommand,
				DefaultCode: typst.DefaultCode,
				DefaultSize: typst.DefaultFontSize,
				Pages:       typst.Pages(),
			})
		},
	}
	inxCmd.Flags().StringVar(&inxCommand, "command", "typst-formula", "Executable Inkscape should run, relative to the .inx file")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the typst compiler can be run",
		Args:  cobra.NoArgs,
		RunE:  doctor,
	}

	rootCmd.AddCommand(versionCmd, inxCmd, doctorCmd)
	return rootCmd
}

// settings merges the config file with the flags the user actually set.
func settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("typst-bin") {
		cfg.Typst.Binary = typstBin
	}
	if flags.Changed("timeout") {
		cfg.Typst.Timeout = timeout
	}
	if flags.Changed("font_size") {
		cfg.FontSize = fontSize
	}
	if flags.Changed("page") {
		cfg.Page = page
	}
	if flags.Changed("label") {
		cfg.Label = label
	}
	return cfg, nil
}

func commandContext(cfg config.Config) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if cfg.Typst.Timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Typst.Timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	logger := &cliLogger{out: cmd.ErrOrStderr(), verbose: verbose}

	host, err := readDrawing(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg)
	defer cancel()

	opts := typstformula.Options{
		Request:       typst.Request{Code: typstCode, FontSize: cfg.FontSize, Page: cfg.Page},
		Binary:        cfg.Typst.Binary,
		Label:         cfg.Label,
		KeepWorkspace: keepWorkspace,
		Logger:        logger,
	}

	if _, err := typstformula.Insert(ctx, host, opts); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := host.WriteTo(&buf); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}

	if outputFile == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	logger.Infof("Writing to %s...", outputFile)
	return os.WriteFile(outputFile, buf.Bytes(), 0644)
}

func readDrawing(cmd *cobra.Command, args []string) (*inkscape.Document, error) {
	if len(args) == 0 || args[0] == "-" {
		return inkscape.Read(cmd.InOrStdin())
	}
	return inkscape.Open(args[0])
}

func doctor(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg)
	defer cancel()

	logger := &cliLogger{out: cmd.ErrOrStderr(), verbose: verbose}

	compiler := typst.NewCompiler(cfg.Typst.Binary)
	v, err := compiler.Version(ctx)
	if err != nil {
		logger.Errorf("%s cannot be run: %v", compiler.Binary(), err)
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", compiler.Binary(), v)
	return nil
}

// cliLogger implements typstformula.Logger with colored output on stderr;
// stdout carries the drawing.
type cliLogger struct {
	out     io.Writer
	verbose bool
}

func (l *cliLogger) Infof(format string, args ...any) {
	if !l.verbose {
		return
	}
	color.New(color.FgYellow).Fprintf(l.out, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.out, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.out, "✗ "+format+"\n", args...)
}
