// Command pdflex is a smoke-test harness for the pdf package: it tokenizes
// or parses a file (or stdin) and prints one token or object per line.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/korvin-labs/go-psobj/pkg/pdf"
)

type options struct {
	Tokens bool `short:"t" long:"tokens" description:"Dump raw tokens instead of parsed objects"`
	Strict bool `long:"strict" description:"Parse in strict mode: malformed structure is a fatal error"`
	Help   bool `long:"help" description:"Show this help"`
}

func parseOptions(args []string) (*options, []string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[-t] [--strict] [file]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	return &opts, rest
}

func main() {
	opts, rest := parseOptions(os.Args[1:])

	src, err := openSource(rest)
	if err != nil {
		log.Fatal(err)
	}

	bc, err := pdf.NewBufferCursor(src)
	if err != nil {
		log.Fatal(err)
	}

	parserOpts := []pdf.Option{pdf.WithStrict(opts.Strict)}

	if opts.Tokens {
		dumpTokens(pdf.NewTokenizer(bc, parserOpts...))
		return
	}
	dumpObjects(pdf.NewStackParser(pdf.NewTokenizer(bc, parserOpts...), nil, parserOpts...))
}

// openSource reads the whole file (or stdin) into memory and wraps it in a
// bytes.Reader: the pdf package needs a Seeker, which os.Stdin is not.
func openSource(args []string) (pdf.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func dumpTokens(tok *pdf.Tokenizer) {
	for {
		t, err := tok.NextToken()
		if err != nil {
			reportEOF(err)
			return
		}
		fmt.Printf("%d\t%s\t%s\n", t.Pos, t.Kind, t.String())
	}
}

func dumpObjects(sp *pdf.StackParser) {
	for {
		obj, err := sp.NextObject()
		if err != nil {
			reportEOF(err)
			return
		}
		fmt.Printf("%d\t%s\t%s\n", obj.Pos, obj.Kind, obj.String())
	}
}

// reportEOF treats UnexpectedEOF as the normal end of a scan and anything
// else as a fatal parse error.
func reportEOF(err error) {
	var perr *pdf.Error
	if errors.As(err, &perr) && perr.Kind == pdf.UnexpectedEOF {
		return
	}
	log.Fatal(err)
}
