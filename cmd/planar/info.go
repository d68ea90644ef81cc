package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deepteams/planar"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Show the format, dimensions and decoded plane layout of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, input string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := newLogger(cmd.ErrOrStderr(), verbose)

	in, err := openInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	d, format, err := planar.Decode(in)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	defer d.Release()
	log.Debug("decoded", "input", displayName(input), "format", format)

	strides := make([]string, len(d.Planes))
	for i, p := range d.Planes {
		strides[i] = fmt.Sprint(p.Stride)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:       %s\n", displayName(input))
	fmt.Fprintf(w, "Format:     %s\n", format)
	fmt.Fprintf(w, "Dimensions: %d x %d\n", d.Width, d.Height)
	fmt.Fprintf(w, "Planes:     %d (stride %s)\n", len(d.Planes), strings.Join(strides, ", "))
	fmt.Fprintf(w, "RGB size:   %s\n", humanize.Bytes(uint64(d.Width*d.Height*planar.Channels)))
	if input != "-" {
		if fi, err := os.Stat(input); err == nil {
			fmt.Fprintf(w, "File size:  %s\n", humanize.Bytes(uint64(fi.Size())))
		}
	}
	return nil
}
