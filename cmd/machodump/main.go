// machodump prints the thread states and symbols of a Mach-O image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/wnxd/machoinspect/macho"
)

func main() {
	showThreads := flag.Bool("threads", false, "Print LC_THREAD / LC_UNIXTHREAD register states")
	showSymbols := flag.Bool("symbols", false, "Print the symbol table")
	doDemangle := flag.Bool("demangle", false, "Demangle C++ symbol names")
	strict := flag.Bool("strict", false, "Report flavor lists that overrun their load command")
	verbose := flag.Bool("v", false, "Enable debug logging")
	noColor := flag.Bool("no-color", false, "Disable colored output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <macho-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -threads a.out\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -symbols -demangle libfoo.dylib\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *noColor {
		color.NoColor = true
	}

	// Default to everything if nothing was selected
	if !*showThreads && !*showSymbols {
		*showThreads, *showSymbols = true, true
	}

	f, err := macho.Open(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("failed to open mach-o")
	}
	defer f.Close()

	opts := options{
		threads:  *showThreads,
		symbols:  *showSymbols,
		demangle: *doDemangle,
		strict:   *strict,
	}
	if err := dump(os.Stdout, f, opts); err != nil {
		log.WithError(err).Fatal("failed to dump mach-o")
	}
}
