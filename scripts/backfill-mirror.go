package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unbounded/waitlist/internal/model"
	"github.com/unbounded/waitlist/internal/repository"
	"github.com/unbounded/waitlist/internal/store"
)

// Copies an existing signup log into the Postgres mirror table. Each line
// becomes a new row, so run it once against an empty table.

type output struct {
	File     string `json:"file"`
	Table    string `json:"table"`
	Read     int    `json:"read"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	DryRun   bool   `json:"dry_run"`
}

type lineError struct {
	Line int
	Err  error
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		table       = flag.String("table", envOr("DATABASE_TABLE", repository.DefaultTable), "Mirror table, optionally schema-qualified")
		file        = flag.String("file", defaultLogPath(), "Signup log to read")
		dryRun      = flag.Bool("dry-run", false, "Parse the log without inserting")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" && !*dryRun {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}
	defer f.Close()

	signups, bad, err := readSignups(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read log:", err)
		os.Exit(1)
	}
	for _, le := range bad {
		fmt.Fprintf(os.Stderr, "skipping line %d: %v\n", le.Line, le.Err)
	}

	out := output{
		File:    *file,
		Table:   *table,
		Read:    len(signups) + len(bad),
		Skipped: len(bad),
		DryRun:  *dryRun,
	}

	if !*dryRun {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		repo, err := repository.New(ctx, *databaseURL, *table)
		if err != nil {
			fmt.Fprintln(os.Stderr, "connect database:", err)
			os.Exit(1)
		}
		defer repo.Close()

		for _, s := range signups {
			if err := repo.InsertSignup(ctx, s); err != nil {
				fmt.Fprintf(os.Stderr, "insert after %d rows: %v\n", out.Inserted, err)
				os.Exit(1)
			}
			out.Inserted++
		}
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("read %d, inserted %d, skipped %d\n", out.Read, out.Inserted, out.Skipped)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

// readSignups parses one record per line. Blank lines are ignored; lines
// that do not decode, or hold an invalid email, are reported and skipped.
func readSignups(r io.Reader) ([]*model.Signup, []lineError, error) {
	var (
		signups []*model.Signup
		bad     []lineError
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var s model.Signup
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			bad = append(bad, lineError{Line: n, Err: err})
			continue
		}
		if !model.IsValidEmail(s.Email) {
			bad = append(bad, lineError{Line: n, Err: errors.New("invalid email")})
			continue
		}
		signups = append(signups, &s)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return signups, bad, nil
}

func defaultLogPath() string {
	dir := envOr("WAITLIST_DATA_DIR", store.DefaultPrimaryDir)
	return filepath.Join(dir, envOr("WAITLIST_FILENAME", store.DefaultFilename))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
