// Command urcasm assembles a source file into a binary image a
// downstream interpreter can load. Flag handling and the
// read-assemble-write flow follow cmd/asm68/main.go's shape, extended
// with the config and lint packages the assembler core sits alongside.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/internal/config"
	"github.com/halfdan-ek/urcasm/lint"
	"github.com/halfdan-ek/urcasm/loader"
	"github.com/halfdan-ek/urcasm/resolve"
	"github.com/halfdan-ek/urcasm/token"
)

func main() {
	log.SetFlags(0)

	outPath := flag.String("o", "", "output image path (defaults to <source>.img)")
	configPath := flag.String("config", "", "path to a urcasm.toml config file (defaults to the platform config dir)")
	lintFlag := flag.Bool("lint", true, "run supplementary lint checks (unused labels, unreachable code)")
	quiet := flag.Bool("q", false, "suppress warning-level diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <source.urcl>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	sourcePath := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Fatalf("reading source: %v", err)
	}

	toks := token.NewLexer(string(src)).Tokenize()
	prog, errs := resolve.Parse(toks, string(src), resolve.WithHeaders(resolve.Headers{
		Bits:     cfg.Headers.Bits,
		MinReg:   cfg.Headers.MinReg,
		MinHeap:  cfg.Headers.MinHeap,
		MinStack: cfg.Headers.MinStack,
	}))

	hasWarnings := reportDiagnostics(errs, *quiet)
	if errs.HasErrors() || (hasWarnings && cfg.Diagnostics.WarningsAsErrors) {
		os.Exit(1)
	}

	if *lintFlag {
		for _, issue := range lint.Lint(prog, toks, nil) {
			fmt.Fprintln(os.Stderr, issue.String())
		}
	}

	dest := *outPath
	if dest == "" {
		dest = sourcePath + ".img"
	}
	if err := writeImage(dest, prog); err != nil {
		log.Fatalf("writing image: %v", err)
	}
	fmt.Printf("assembled %d instructions, %d words of data, to %s\n", len(prog.Instructions), len(prog.Memory), dest)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// reportDiagnostics prints every collected diagnostic and reports
// whether any warning was among them.
func reportDiagnostics(errs *diag.List, quiet bool) bool {
	sawWarning := false
	for _, d := range errs.All() {
		if d.Severity == diag.SevWarning {
			sawWarning = true
			if quiet {
				continue
			}
		}
		fmt.Fprintln(os.Stderr, d.String())
	}
	return sawWarning
}

func writeImage(path string, prog *resolve.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return loader.Save(f, loader.FromProgram(prog))
}
