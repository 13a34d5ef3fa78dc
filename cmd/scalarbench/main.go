// Command scalarbench exercises the scalar value engine end to end: it
// builds a handful of Values, runs casts, arithmetic, comparison and
// LIKE over them, and logs the results. It is a smoke-test harness, not
// a benchmark suite in the Go testing.B sense.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	scalarval "github.com/dbkernel/scalarval"
)

func initSlog() {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		switch strings.ToLower(raw) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

type options struct {
	Decimal   string `long:"decimal" description:"a decimal literal to cast/print" value-name:"literal" default:"1.234567890123"`
	Multiplier string `long:"multiplier" description:"a second decimal literal to multiply by" value-name:"literal" default:"2"`
	Like      bool   `long:"like" description:"run the LIKE demo instead of the arithmetic demo"`
	Pattern   string `long:"pattern" description:"LIKE pattern, used with --like" value-name:"pattern" default:"a%c_e"`
	Value     string `long:"value" description:"LIKE subject, used with --like" value-name:"text" default:"abcde"`
	Help      bool   `long:"help" description:"show this help"`
}

func parseOptions(args []string) options {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	if _, err := parser.ParseArgs(args); err != nil {
		slog.Error("parse flags", "err", err)
		os.Exit(1)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	return opts
}

func runArithDemo(opts options) {
	a, err := scalarval.Cast(scalarval.TempString([]byte(opts.Decimal)), scalarval.KindDecimal)
	if err != nil {
		slog.Error("parse decimal", "literal", opts.Decimal, "err", err)
		os.Exit(1)
	}
	b, err := scalarval.Cast(scalarval.TempString([]byte(opts.Multiplier)), scalarval.KindDecimal)
	if err != nil {
		slog.Error("parse multiplier", "literal", opts.Multiplier, "err", err)
		os.Exit(1)
	}

	product, err := scalarval.Mul(a, b)
	if err != nil {
		slog.Error("multiply", "err", err)
		os.Exit(1)
	}
	asText, err := scalarval.Cast(product, scalarval.KindVarchar)
	if err != nil {
		slog.Error("format result", "err", err)
		os.Exit(1)
	}
	cmp, err := scalarval.Compare(a, b)
	if err != nil {
		slog.Error("compare", "err", err)
		os.Exit(1)
	}
	h1, h2 := scalarval.Hash(a)

	fmt.Printf("%s * %s = %s\n", opts.Decimal, opts.Multiplier, string(asText.AsBytes()))
	fmt.Printf("compare(%s, %s) = %d\n", opts.Decimal, opts.Multiplier, cmp)
	fmt.Printf("hash(%s) = %016x%016x\n", opts.Decimal, h1, h2)
	slog.Debug("arith demo complete", "product_scaled", product.AsDecimalScaled().String())
}

func runLikeDemo(opts options) {
	matched := scalarval.Like([]byte(opts.Value), []byte(opts.Pattern))
	fmt.Printf("LIKE(%q, %q) = %v\n", opts.Value, opts.Pattern, matched)
	slog.Debug("like demo complete", "code_points", scalarval.CodePointCount([]byte(opts.Value)))
}

func main() {
	initSlog()
	opts := parseOptions(os.Args[1:])
	if opts.Like {
		runLikeDemo(opts)
		return
	}
	runArithDemo(opts)
}
