package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/phyten/backrefx/internal/jsontsv"
)

func totsvCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("totsv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verbose := fs.Bool("v", false, "print line counts to stderr")
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if fs.NArg() != 1 {
		return &usageError{msg: "totsv needs exactly one input file"}
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := jsontsv.Convert(f, stdout)
	if err != nil {
		return fmt.Errorf("totsv: %w", err)
	}
	if *verbose {
		log.New(stderr, "", 0).Printf("lines=%d converted=%d undecodable=%d blank=%d omitted=%d",
			st.Lines, st.Converted, st.Undecodable, st.Blank, st.Omitted)
	}
	return nil
}
