package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/go-squash/squash"
)

func main() {
	algorithm := flag.String("algorithm", "zstd", "Compression algorithm (zlib, zstd, brotli, lz4, bzip2, xz)")
	level := flag.Int("level", int(squash.DefaultLevel), "Compression level (1 = fastest, 10 = smallest)")
	decompress := flag.Bool("d", false, "Decompress instead of compress")
	output := flag.String("o", "", "Output path (required)")
	verify := flag.Bool("verify", false, "After compressing, decompress and compare xxhash64 digests")
	flag.Parse()

	if flag.NArg() != 1 || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: squash [flags] -o OUTPUT INPUT")
		flag.PrintDefaults()
		os.Exit(1)
	}

	alg, err := squash.ParseAlgorithm(*algorithm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading input: %v\n", err)
		os.Exit(1)
	}

	var result []byte
	if *decompress {
		result, err = squash.Decompress(data, alg)
	} else {
		result, err = squash.Compress(data, alg, squash.Level(*level))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verify && !*decompress {
		restored, err := squash.Decompress(result, alg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: verification decompress failed: %v\n", err)
			os.Exit(1)
		}
		want, got := xxhash.Sum64(data), xxhash.Sum64(restored)
		if want != got {
			fmt.Fprintf(os.Stderr, "Error: verification digest mismatch: %016x != %016x\n", want, got)
			os.Exit(1)
		}
		fmt.Printf("Verified: xxhash64 %016x\n", want)
	}

	if err := os.WriteFile(*output, result, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", err)
		os.Exit(1)
	}

	if *decompress {
		fmt.Printf("Decompressed %d -> %d bytes (%s)\n", len(data), len(result), alg)
	} else {
		ratio := 0.0
		if len(data) > 0 {
			ratio = float64(len(result)) / float64(len(data)) * 100
		}
		fmt.Printf("Compressed %d -> %d bytes (%.1f%%, %s level %d)\n",
			len(data), len(result), ratio, alg, *level)
	}
}
