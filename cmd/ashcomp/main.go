// Command ashcomp compresses a file into the ASH0 container format.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/wii-tools/ash0"
)

const (
	extension = ".ash"
	version   = "1.0.0"
)

var (
	flagOut     = flag.String("o", "", "output file (default: <infile>.ash)")
	flagDist    = flag.Int("d", 11, "distance alphabet bits")
	flagSym     = flag.Int("l", 9, "symbol alphabet bits")
	flagPasses  = flag.Int("c", 0, "number of retokenization passes")
	flagVerbose = flag.Bool("v", false, "report per-pass size during retokenization")
	flagVersion = flag.Bool("version", false, "print version and exit")
)

func quitF(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println("ashcomp v" + version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		quitF("usage: ashcomp <infile> [-o outpath] [-d dist_bits] [-l sym_bits] [-c passes]\n")
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
	passCount := *flagPasses
	if passCount < 0 {
		passCount = 0
	}

	var out []byte
	if *flagVerbose {
		// Re-encoding at each intermediate pass count is the price of a
		// per-pass size report; the final iteration's output is reused
		// below rather than encoding a last time.
		for passes := 0; passes <= passCount; passes++ {
			out, err = ash0.Encode(in, p, passes)
			if err != nil {
				slog.Error("compression failed", "path", inPath, "passes", passes, "err", err)
				quitF("%v\n", err)
			}
			slog.Info("pass complete", "passes", passes, "bytes", len(out))
		}
	} else {
		out, err = ash0.Encode(in, p, passCount)
		if err != nil {
			slog.Error("compression failed", "path", inPath, "err", err)
			quitF("%v\n", err)
		}
	}

	if err := os.WriteFile(outPath, out, 0o600); err != nil {
		slog.Error("write output failed", "path", outPath, "err", err)
		quitF("%v\n", err)
	}

	ratioPct := 0
	if len(in) > 0 {
		ratioPct = int(int64(len(out)) * 10000 / int64(len(in)))
	}
	fmt.Printf("%s: %dB -> %dB (%d.%02d%%)\n", strings.TrimSuffix(outPath, extension), len(in), len(out), ratioPct/100, ratioPct%100)
}
