// Command datefmt classifies and formats dates from the shell and manages the format cache
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"datefmt/internal/modkit"
	"datefmt/internal/modkit/module"
	"datefmt/internal/platform/config"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/logger"
	"datefmt/internal/services/dates/domain"
	datesmod "datefmt/internal/services/dates/module"
	"datefmt/internal/services/dates/service"

	"github.com/dustin/go-humanize"
)

const usage = `usage: datefmt <command> [flags] [args]

commands:
  check VALUE...           report whether each value looks like and is a date
  format [flags] VALUE     format a date through the cache
  layouts                  list accepted layouts
  cache stats              show cache driver, entries and size
  cache purge              delete every cached entry
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, datesmod.FromConfig(config.New()))
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, o datesmod.Options) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return 2
	}
	deps := modkit.Deps{Log: *logger.Get(), Cfg: config.New()}

	var err error
	switch args[0] {
	case "check":
		err = check(ctx, args[1:], stdout, deps, o)
	case "format":
		err = format(ctx, args[1:], stdout, deps, o)
	case "layouts":
		err = layouts(ctx, stdout, deps, o)
	case "cache":
		err = cacheCmd(ctx, args[1:], stdout, deps, o)
	case "-h", "--help", "help":
		_, _ = fmt.Fprint(stdout, usage)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, flag.ErrHelp) || perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			return 2
		}
		return 1
	}
	return 0
}

// open builds the dates module; the returned func releases the cache
func open(deps modkit.Deps, o datesmod.Options) (domain.ServicePort, func() error) {
	m := datesmod.New(deps, o)
	return module.MustPortsOf[datesmod.Ports](m).Service, m.Close
}

func check(ctx context.Context, args []string, stdout io.Writer, deps modkit.Deps, o datesmod.Options) error {
	if len(args) == 0 {
		return perr.InvalidArgf("check needs at least one value")
	}
	svc, closeFn := open(deps, o)
	defer func() { _ = closeFn() }()

	out, err := svc.Classify(ctx, domain.ClassifyInput{Values: args})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "VALUE\tLOOKS LIKE DATE\tIS DATE")
	for _, r := range out.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%t\t%t\n", r.Value, r.LooksLikeDate, r.IsDate)
	}
	return tw.Flush()
}

func format(ctx context.Context, args []string, stdout io.Writer, deps modkit.Deps, o datesmod.Options) error {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		fFormat  = fs.String("f", "", "format string, e.g. YYYY/MM/DD")
		fLocale  = fs.String("locale", "", "locale for month and relative names")
		fFromNow = fs.Bool("from-now", false, "describe relative to now")
		fDiff    = fs.String("diff", "", "difference from now in a unit: days, hours, ...")
		fJSON    = fs.Bool("json", false, "treat VALUE as JSON (numbers, arrays, null)")
	)
	if err := fs.Parse(args); err != nil {
		return perr.InvalidArgf("format: %v", err)
	}
	if fs.NArg() != 1 {
		return perr.InvalidArgf("format needs exactly one value")
	}

	var date any = fs.Arg(0)
	if *fJSON {
		dec := json.NewDecoder(strings.NewReader(fs.Arg(0)))
		dec.UseNumber()
		if err := dec.Decode(&date); err != nil {
			return perr.InvalidArgf("value is not JSON: %v", err)
		}
	}

	svc, closeFn := open(deps, o)
	defer func() { _ = closeFn() }()

	// only flags given on the command line override the configured defaults
	byFlag := map[string]struct {
		arg string
		val func() any
	}{
		"f":        {service.ArgFormatString, func() any { return *fFormat }},
		"from-now": {service.ArgFromNow, func() any { return *fFromNow }},
		"diff":     {service.ArgDifference, func() any { return *fDiff }},
		"locale":   {service.ArgLocale, func() any { return *fLocale }},
	}
	resolveArgs := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		if a, ok := byFlag[f.Name]; ok {
			resolveArgs[a.arg] = a.val()
		}
	})

	// resolve keeps null passthrough and array handling for -json values
	res, err := svc.Resolve(ctx, domain.ResolveInput{Value: date, Args: resolveArgs})
	if err != nil {
		return err
	}
	switch v := res.Result.(type) {
	case string:
		_, err = fmt.Fprintln(stdout, v)
	default:
		err = json.NewEncoder(stdout).Encode(v)
	}
	return err
}

func layouts(ctx context.Context, stdout io.Writer, deps modkit.Deps, o datesmod.Options) error {
	svc, closeFn := open(deps, o)
	defer func() { _ = closeFn() }()

	out, err := svc.Layouts(ctx)
	if err != nil {
		return err
	}
	for _, t := range out.Templates {
		_, _ = fmt.Fprintln(stdout, t)
	}
	return nil
}

func cacheCmd(ctx context.Context, args []string, stdout io.Writer, deps modkit.Deps, o datesmod.Options) error {
	if len(args) != 1 || (args[0] != "stats" && args[0] != "purge") {
		return perr.InvalidArgf("cache needs stats or purge")
	}
	r, release, err := datesmod.OpenRepo(ctx, deps, o)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	if args[0] == "purge" {
		n, err := r.Purge(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "purged %s entries\n", humanize.Comma(n))
		return err
	}

	s, err := r.Stats(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "driver  %s\nentries %s\nsize    %s\n",
		o.Driver, humanize.Comma(s.Entries), humanize.Bytes(uint64(max(s.Bytes, 0))))
	return err
}
