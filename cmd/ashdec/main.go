// Command ashdec decompresses an ASH0 container back to raw bytes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wii-tools/ash0"
)

const extension = ".arc"

var (
	flagOut     = flag.String("o", "", "output file (default: <infile>.arc)")
	flagDist    = flag.Int("d", 11, "distance alphabet bits")
	flagSym     = flag.Int("l", 9, "symbol alphabet bits")
	flagVerbose = flag.Bool("v", false, "report decoded size")
)

func quitF(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		quitF("usage: ashdec <infile> [-o outpath] [-d dist_bits] [-l sym_bits]\n")
	}
	inPath := flag.Arg(0)

	in, err := os.ReadFile(inPath)
	if err != nil {
		slog.Error("read input failed", "path", inPath, "err", err)
		quitF("%v\n", err)
	}

	outPath := *flagOut
	if outPath == "" {
		outPath = inPath + extension
	}

	p := ash0.Params{SymBits: *flagSym, DistBits: *flagDist}

	out, err := ash0.Decode(in, p)
	if err != nil {
		slog.Error("decompression failed", "path", inPath, "err", err)
		quitF("%v\n", err)
	}

	if err := os.WriteFile(outPath, out, 0o600); err != nil {
		slog.Error("write output failed", "path", outPath, "err", err)
		quitF("%v\n", err)
	}

	if *flagVerbose {
		fmt.Printf("%s: %dB -> %dB\n", outPath, len(in), len(out))
	}
}
