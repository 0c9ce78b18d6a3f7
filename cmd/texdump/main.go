package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"donut-viewer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

func dumpTexture(src, outDir, format string) error {
	img, err := texture.LoadTexture(src)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dst := filepath.Join(outDir, stem+"_dump."+format)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()

	if err := encode(f, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	fmt.Printf("OK  %s -> %s  (%dx%d)\n", src, dst, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func encode(f *os.File, img image.Image, format string) error {
	switch format {
	case "webp":
		return nativewebp.Encode(f, img, nil)
	case "png":
		return png.Encode(f, img)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func main() {
	outDir := flag.String("out", ".", "Output directory")
	format := flag.String("format", "webp", "Output format: webp or png")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: texdump [-out dir] [-format webp|png] <texture>...\n")
		fmt.Fprintf(os.Stderr, "Accepted textures: %s\n", strings.Join(texture.Extensions, " "))
		os.Exit(1)
	}

	errors := 0
	for _, src := range flag.Args() {
		if err := dumpTexture(src, *outDir, *format); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone. All textures converted.")
}
