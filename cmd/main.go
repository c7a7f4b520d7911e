package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	aoio "github.com/martonlederer/ao-tokens/internal/io"
	aoslog "github.com/martonlederer/ao-tokens/internal/logging/slog"
	"github.com/martonlederer/ao-tokens/internal/token"
)

const (
	cacheTTL = 24 * time.Hour

	usage = `usage: ao-tokens <operation> [operands...] [flags]

operations:
  format <q>               print q normalized
  add|sub|mul|div <a> <b>  arithmetic
  pow <q> <exponent>       integer power
  convert <q> <denom>      rescale q to another denomination
  trunc <q>                drop the fractional part
  cmp <a> <b>              print -1, 0 or 1
  min|max <q>...           smallest or largest value
  check <q>                whether q is denominated like --token
  info                     print the details of --token

operands are decimal strings, optionally suffixed with @<denomination>

flags:
  --denomination=<n>       default denomination of operands
  --token=<process id>     token whose denomination operands default to
  --cu-url=<url>           AO compute unit (default ` + token.DefaultComputeUnitURL + `)
  --registry-file=<path>   YAML token registry used instead of the compute unit
  --cache-dir=<path>       directory of the token details cache
  --log-level=<level>      debug, info, warn or error`
)

func main() {
	ctx := context.Background()

	args, flags := splitArgs(os.Args[1:])

	level, err := getLogLevel(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2) //nolint:mnd
	}
	slog.SetDefault(slog.New(aoslog.NewHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2) //nolint:mnd
	}

	if err := run(ctx, args[0], args[1:], flags); err != nil {
		slog.ErrorContext(ctx, "Operation failed", "operation", args[0], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, operation string, operands []string, flags map[string]string) error {
	var details *token.Details
	if processID := flags["token"]; processID != "" {
		detailsService, closeService, err := newDetailsService(flags)
		if err != nil {
			return err
		}
		defer closeService()

		slog.DebugContext(ctx, fmt.Sprintf("Retrieving token details for process '%s'", processID))

		details, err = detailsService.GetTokenDetails(ctx, processID)
		if err != nil {
			return fmt.Errorf("failed to retrieve token details: %w", err)
		}
		if details == nil {
			return fmt.Errorf("token '%s': %w", processID, token.ErrTokenNotFound)
		}

		slog.DebugContext(ctx, "Resolved token", "ticker", details.Ticker, "denomination", details.Decimals)
	}

	denomination, err := getDenomination(flags, details)
	if err != nil {
		return err
	}

	out, err := evaluate(operation, operands, denomination, details)
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

// splitArgs separates --key=value flags from positional arguments.
func splitArgs(rawArgs []string) ([]string, map[string]string) {
	var args []string
	flags := make(map[string]string)
	for _, arg := range rawArgs {
		flag, isFlag := strings.CutPrefix(arg, "--")
		if !isFlag {
			args = append(args, arg)

			continue
		}

		key, value, _ := strings.Cut(flag, "=")
		flags[key] = value
	}

	return args, flags
}

func getLogLevel(flags map[string]string) (slog.Level, error) {
	var level slog.Level
	if raw, ok := flags["log-level"]; ok {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return level, fmt.Errorf("invalid --log-level '%s': %w", raw, err)
		}
	}

	return level, nil
}

func getDenomination(flags map[string]string, details *token.Details) (uint, error) {
	raw, ok := flags["denomination"]
	if !ok {
		if details != nil {
			return details.Decimals, nil
		}

		return 0, nil
	}

	denomination, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid --denomination '%s': %w", raw, err)
	}

	return uint(denomination), nil
}

// newDetailsService assembles the token lookup: a registry file or the compute unit,
// optionally behind the persistent cache. The returned func releases its resources.
func newDetailsService(flags map[string]string) (token.DetailsService, func(), error) {
	var detailsService token.DetailsService
	if registryFile := flags["registry-file"]; registryFile != "" {
		registry, err := token.LoadRegistry(registryFile)
		if err != nil {
			return nil, nil, err
		}
		detailsService = registry
	} else {
		cuURL := flags["cu-url"]
		if cuURL == "" {
			cuURL = token.DefaultComputeUnitURL
		}
		detailsService = token.NewDryRunDetailsService(http.DefaultClient, cuURL)
	}

	cacheDir, hasCache := flags["cache-dir"]
	if !hasCache {
		return detailsService, func() {}, nil
	}

	if cacheDir != "" {
		exists, err := aoio.DirExists(cacheDir)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, errors.New("--cache-dir must point to an existing directory")
		}
	}

	db, err := token.OpenCache(cacheDir)
	if err != nil {
		return nil, nil, err
	}

	closeCache := func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close token details cache", "error", err)
		}
	}

	return token.NewCachingDetailsService(db, detailsService, cacheTTL), closeCache, nil
}
