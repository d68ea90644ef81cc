package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/deepteams/planar"
)

type convertFlags struct {
	output  string
	resize  []int
	filter  string
	format  string
	quality int
	gzip    bool
	jobs    int
	force   bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	fl := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "planar [flags] <input>...",
		Short: "Convert and resize images to packed RGB",
		Long: `planar decodes PNG, JPEG, GIF, WebP, BMP or TIFF images, composes them
into packed 8-bit RGB and optionally resizes them. A 0 in --resize derives
that side from the source aspect ratio.

Use "-" as input to read stdin and "-o -" to write stdout.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, fl, args)
		},
	}

	f := cmd.Flags()
	f.SetNormalizeFunc(aliasFlags)
	f.StringVarP(&fl.output, "output", "o", "", `output file or directory ("-" for stdout)`)
	f.IntSliceVarP(&fl.resize, "resize", "r", []int{0, 0}, "target size W,H; 0 keeps the aspect ratio (alias --scale)")
	f.StringVar(&fl.filter, "filter", planar.FilterLanczos.String(),
		"resampling filter: "+strings.Join(planar.FilterNames(), "|"))
	f.StringVar(&fl.format, "fmt", "", "output format png|jpeg|ppm (default: from output extension)")
	f.IntVarP(&fl.quality, "quality", "q", planar.DefaultJPEGQuality, "JPEG quality 1-100")
	f.BoolVar(&fl.gzip, "gzip", false, "gzip the encoded output")
	f.IntVarP(&fl.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "images converted in parallel")
	f.BoolVarP(&fl.force, "force", "f", false, "write binary output to a terminal")
	_ = cmd.MarkFlagRequired("output")

	cmd.PersistentFlags().BoolVarP(&fl.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newInfoCmd())
	return cmd
}

// aliasFlags maps alternate flag spellings to their canonical names.
func aliasFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "scale":
		name = "resize"
	case "format":
		name = "fmt"
	}
	return pflag.NormalizedName(name)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// converter holds the settings shared by every input of one invocation.
type converter struct {
	opts   planar.Options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func runConvert(cmd *cobra.Command, fl *convertFlags, inputs []string) error {
	stderr := &lockedWriter{w: cmd.ErrOrStderr()}
	c := &converter{
		stdin:  cmd.InOrStdin(),
		stdout: cmd.OutOrStdout(),
		stderr: stderr,
		log:    newLogger(stderr, fl.verbose),
	}

	if len(fl.resize) != 2 {
		return fmt.Errorf("--resize wants W,H, got %d values", len(fl.resize))
	}
	if fl.resize[0] < 0 || fl.resize[1] < 0 {
		return fmt.Errorf("--resize values must be non-negative, got %d,%d", fl.resize[0], fl.resize[1])
	}
	filter, err := planar.ParseFilter(fl.filter)
	if err != nil {
		return err
	}
	if fl.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", fl.jobs)
	}

	format, pathGz := planar.FormatForPath(fl.output)
	if cmd.Flags().Changed("fmt") {
		if format, err = planar.ParseFormat(fl.format); err != nil {
			return err
		}
	}
	c.opts = planar.Options{
		Width:  fl.resize[0],
		Height: fl.resize[1],
		Filter: filter,
		Encode: &planar.EncodeOptions{
			Format:  format,
			Quality: fl.quality,
			Gzip:    fl.gzip || pathGz,
		},
	}

	toDir := false
	if fl.output != "-" {
		if fi, err := os.Stat(fl.output); err == nil && fi.IsDir() {
			toDir = true
		}
	}
	if len(inputs) > 1 && !toDir {
		return fmt.Errorf("%d inputs need -o to name an existing directory, got %q", len(inputs), fl.output)
	}
	if fl.output == "-" && isTerminal(c.stdout) && !fl.force {
		return errors.New("refusing to write binary output to a terminal (use --force)")
	}

	c.log.Debug("settings",
		"inputs", len(inputs),
		"resize", fmt.Sprintf("%d,%d", c.opts.Width, c.opts.Height),
		"filter", filter,
		"format", format,
		"gzip", c.opts.Encode.Gzip,
		"jobs", fl.jobs)

	if len(inputs) == 1 {
		out := fl.output
		if toDir {
			out = filepath.Join(fl.output, outputName(inputs[0], format, c.opts.Encode.Gzip))
		}
		return c.convertFile(cmd.Context(), inputs[0], out)
	}

	outputs, err := batchOutputs(fl.output, inputs, format, c.opts.Encode.Gzip)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(fl.jobs)
	for i, in := range inputs {
		out := outputs[i]
		g.Go(func() error {
			return c.convertFile(ctx, in, out)
		})
	}
	return g.Wait()
}

// batchOutputs maps each input to its file in dir. Two inputs that would
// write the same file are an error.
func batchOutputs(dir string, inputs []string, f planar.Format, gz bool) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := filepath.Join(dir, outputName(in, f, gz))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("inputs %s and %s both write %s",
				displayName(prev), displayName(in), out)
		}
		seen[out] = in
		outputs[i] = out
	}
	return outputs, nil
}

// convertFile converts the image at input and writes it to output.
func (c *converter) convertFile(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	in, err := openInput(input, c.stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	var (
		res  *planar.Result
		size int64
	)
	convert := func(w io.Writer) error {
		var err error
		res, err = planar.Convert(in, w, &c.opts)
		return err
	}

	if output == "-" {
		cw := &countingWriter{w: c.stdout}
		err = convert(cw)
		size = cw.n
	} else {
		c.log.Debug("writing", "input", displayName(input), "output", output)
		size, err = writeAtomic(output, convert)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(input), err)
	}

	c.log.Debug("converted",
		"input", displayName(input),
		"source", res.Format,
		"src", fmt.Sprintf("%dx%d", res.SrcWidth, res.SrcHeight),
		"dst", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"bytes", size)

	name := output
	if output == "-" {
		name = "<stdout>"
	}
	fmt.Fprintf(c.stderr, "Converted %s → %s (%dx%d → %dx%d, %s)\n",
		displayName(input), name,
		res.SrcWidth, res.SrcHeight, res.Width, res.Height,
		humanize.Bytes(uint64(size)))
	return nil
}
