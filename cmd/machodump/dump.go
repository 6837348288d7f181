package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/ianlancetaylor/demangle"
	"github.com/wnxd/machoinspect/describe"
	"github.com/wnxd/machoinspect/macho"
	"github.com/wnxd/machoinspect/symbol"
	"github.com/wnxd/machoinspect/thread"
)

var (
	colorHeader = color.New(color.Bold, color.FgHiMagenta).SprintFunc()
	colorField  = color.New(color.Bold, color.FgHiBlue).SprintFunc()
	colorAddr   = color.New(color.Faint).SprintfFunc()
	colorError  = color.New(color.Bold, color.FgHiRed).SprintFunc()
)

type options struct {
	threads  bool
	symbols  bool
	demangle bool
	strict   bool
}

func dump(w io.Writer, f *macho.File, opts options) error {
	fmt.Fprintf(w, "%s %s %s, %d load commands\n", colorHeader("Mach-O"), f.CPU(), bitness(f), f.NCommands)
	if opts.threads {
		dumpThreads(w, f, opts.strict)
	}
	if opts.symbols {
		if err := dumpSymbols(w, f, opts.demangle); err != nil {
			return err
		}
	}
	return nil
}

func bitness(f *macho.File) string {
	if f.Is64() {
		return "64-bit"
	}
	return "32-bit"
}

func dumpThreads(w io.Writer, f *macho.File, strict bool) {
	for _, t := range f.Threads() {
		name := "LC_THREAD"
		if t.Kind == macho.UNIXTHREAD {
			name = "LC_UNIXTHREAD"
		}
		fmt.Fprintf(w, "\n%s\n", colorHeader(name))
		printFields(w, "  ", t.Fields())

		var iterOpts []thread.IteratorOption
		if strict {
			iterOpts = append(iterOpts, thread.Strict())
		}
		it := t.Iterator(iterOpts...)
		for rec, ok := it.Next(); ok; rec, ok = it.Next() {
			fmt.Fprintf(w, "  %s\n", colorHeader(rec.State.Name()))
			printFields(w, "    ", rec.Fields()[1:])
			printFields(w, "    ", rec.State.Fields())
		}
		if err := it.Err(); err != nil {
			fmt.Fprintf(w, "  %s %v\n", colorError("truncated:"), err)
			log.WithError(err).WithField("offset", t.Offset()).Warn("flavor list stopped early")
		}
	}
}

func dumpSymbols(w io.Writer, f *macho.File, demangleNames bool) error {
	syms := f.SymbolEntries()
	fmt.Fprintf(w, "\n%s (%d)\n", colorHeader("Symbols"), len(syms))
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, sym := range syms {
		name, err := sym.Name.Resolve()
		if err != nil {
			return fmt.Errorf("symbol %d name: %w", sym.Strx, err)
		}
		if demangleNames {
			name = demangleName(name)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", colorAddr("%s", sym.Value), sym.TypeName(), scope(sym), name)
	}
	return tw.Flush()
}

func scope(sym symbol.Entry) string {
	switch {
	case sym.IsDebug():
		return "-"
	case sym.IsPrivateExternal():
		return "private"
	case sym.IsExternal():
		return "extern"
	}
	return "local"
}

// demangleName handles the extra leading underscore Mach-O adds to C++
// symbols.
func demangleName(name string) string {
	if strings.HasPrefix(name, "__Z") {
		if d := demangle.Filter(name[1:]); d != name[1:] {
			return d
		}
	}
	return demangle.Filter(name)
}

func printFields(w io.Writer, indent string, fields []describe.Field) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, field := range fields {
		fmt.Fprintf(tw, "%s%s\t%s\n", indent, colorField(field.Name), field.Value)
	}
	tw.Flush()
}
