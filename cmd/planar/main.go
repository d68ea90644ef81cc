// Command planar converts images to packed RGB, optionally resizing them
// with an aspect-preserving filter, and writes PNG, JPEG or PPM.
//
// Usage:
//
//	planar [flags] <input>...     convert one or more images (use "-" for stdin)
//	planar info <input>           show format, dimensions and plane layout
//
// Examples:
//
//	planar -r 640,0 -o small.png photo.jpg
//	planar --scale 0,200 --filter box -o thumbs/ a.png b.webp c.bmp
//	cat in.png | planar --fmt ppm -o - - > out.ppm
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "planar: %v\n", err)
		os.Exit(1)
	}
}
