// Command sicd-info prints the version, metadata summary and image layout
// of SICD products.
//
// Usage:
//
//	sicd-info [-v] [-segments] [-workers n] <path | s3://bucket/key>...
//	sicd-info -version
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/simonhull/sicd"
	"github.com/simonhull/sicd/schema/common"
	"github.com/simonhull/sicd/source/s3"
)

func main() {
	verbose := flag.Bool("v", false, "log assembly steps to stderr")
	segments := flag.Bool("segments", false, "dump the container segment table")
	workers := flag.Int("workers", 0, "decode goroutines per image (0 = NumCPU)")
	rps := flag.Float64("s3-rps", 0, "max ranged GETs per second for s3:// inputs (0 = unlimited)")
	showVersion := flag.Bool("version", false, "print build information and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sicd-info [flags] <path | s3://bucket/key>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(sicd.GetBuildInfo())
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []sicd.Option{
		sicd.WithLogger(logger),
		sicd.WithDecodeWorkers(*workers),
	}

	ctx := context.Background()
	failed := false
	for _, arg := range flag.Args() {
		if err := describe(ctx, arg, *segments, *rps, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func describe(ctx context.Context, arg string, segments bool, rps float64, opts []sicd.Option) error {
	p, err := open(ctx, arg, rps, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Printf("%s\n", p.Path)
	fmt.Printf("  Container:   %s (%d bytes, compression %s)\n", p.Format, p.Size, p.Compression)
	fmt.Printf("  Version:     %s (schema %s)\n", p.Version(), p.Version().Schema())

	ci, id := summary(p)
	if ci != nil {
		fmt.Printf("  Collector:   %s\n", ci.CollectorName)
		fmt.Printf("  Core name:   %s\n", ci.CoreName)
		fmt.Printf("  Mode:        %s\n", ci.RadarMode.ModeType)
		fmt.Printf("  Class:       %s\n", ci.Classification)
	}
	if id != nil {
		fmt.Printf("  Pixel type:  %s\n", id.PixelType)
		fmt.Printf("  Full image:  %dx%d\n", id.FullImage.NumRows, id.FullImage.NumCols)
	}

	for i, img := range p.Images() {
		fmt.Printf("  Image %d:     %dx%d\n", i, img.Rows, img.Cols)
	}

	if segments {
		dumpSegments(p.Container())
	}
	return nil
}

func open(ctx context.Context, arg string, rps float64, opts []sicd.Option) (*sicd.Product, error) {
	if !strings.HasPrefix(arg, "s3://") {
		return sicd.OpenContext(ctx, arg, opts...)
	}

	bucket, key, err := s3.ParseURL(arg)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []s3.Option
	if rps > 0 {
		s3opts = append(s3opts, s3.WithRequestLimit(rate.NewLimiter(rate.Limit(rps), 1)))
	}

	obj, err := s3.Open(ctx, awss3.NewFromConfig(cfg), bucket, key, s3opts...)
	if err != nil {
		return nil, err
	}
	return sicd.OpenReaderContext(ctx, obj, obj.Size(), obj.Name(), opts...)
}

// summary returns the sections every schema version shares.
func summary(p *sicd.Product) (*common.CollectionInfo, *common.ImageData) {
	if doc, ok := p.MetadataV1(); ok {
		return doc.CollectionInfo, doc.ImageData
	}
	if doc, ok := p.MetadataV050(); ok {
		return doc.CollectionInfo, doc.ImageData
	}
	if doc, ok := p.MetadataV040(); ok {
		return doc.CollectionInfo, doc.ImageData
	}
	return nil, nil
}

func dumpSegments(c sicd.Container) {
	h := c.Header
	fmt.Printf("  Header:      %s%s CLEVEL %02d, %d bytes (header %d)\n",
		h.Profile, h.Version, h.ComplexityLevel, h.FileLength, h.HeaderLength)

	for _, im := range c.Images {
		fmt.Printf("    IM %-10s rows %-6d cols %-6d PVTYPE %-2s NBPP %-2d IC %s (offset: %d, size: %d)\n",
			im.ID, im.Rows, im.Cols, im.PixelValueType, im.BitsPerPixel, im.Compression,
			im.DataOffset, im.DataLength)
	}
	for _, de := range c.DataExtensions {
		fmt.Printf("    DE %-25s v%d (offset: %d, size: %d)\n",
			de.ID, de.Version, de.DataOffset, de.DataLength)
	}
}
