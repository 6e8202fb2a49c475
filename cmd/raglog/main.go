package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hweber/raglog/internal/block"
	"github.com/hweber/raglog/internal/config"
	"github.com/hweber/raglog/internal/conversation"
	"github.com/hweber/raglog/internal/explore"
	"github.com/hweber/raglog/internal/logfile"
	"github.com/hweber/raglog/internal/render"
	"github.com/hweber/raglog/internal/stats"
	"github.com/hweber/raglog/internal/watch"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	switch os.Args[1] {
	case "analyze":
		path := argPath("analyze")
		set := analyze(path, cfg)
		if set.Len() == 0 {
			fmt.Print(render.EmptyHints())
			return
		}
		r := render.New(cfg.Overview.FirstMessageWidth, cfg.Overview.Color)
		explore.New(set, r, os.Stdin, os.Stdout).Run()

	case "stats":
		path := argPath("stats")
		set := analyze(path, cfg)
		fmt.Print(stats.Format(stats.Compute(set, cfg.NoResponse)))

	case "search":
		if len(os.Args) < 4 {
			fatal("usage: raglog search <logfile> [<keyword>] [--since <ts>] [--until <ts>]")
		}
		path := os.Args[2]
		rest := os.Args[3:]
		keyword := ""
		if !strings.HasPrefix(rest[0], "--") {
			keyword = rest[0]
			rest = rest[1:]
		}
		from, to := flagTime(rest, "--since"), flagTime(rest, "--until")

		set := analyze(path, cfg)
		var convs []conversation.Conversation
		if keyword != "" {
			convs = inRange(set.FilterKeyword(keyword), from, to)
		} else {
			convs = set.FilterRange(from, to)
		}
		printMatches(render.New(cfg.Overview.FirstMessageWidth, cfg.Overview.Color), convs)

	case "watch":
		path := argPath("watch")
		runWatch(path, cfg)

	case "version":
		fmt.Printf("raglog v%s\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

// analyze runs one full pass: read, segment, reconstruct. Per-block
// failures are absorbed inside the pass; only an unreadable file is fatal.
func analyze(path string, cfg config.Config) *conversation.Set {
	text, err := logfile.Read(path)
	if err != nil {
		if errors.Is(err, logfile.ErrNotFound) {
			fatal("file not found: %s", path)
		}
		fatal("%v", err)
	}

	blocks := block.Segment(text, cfg.Marker)
	fmt.Printf("Found %d history blocks\n", len(blocks))

	set := conversation.Reconstruct(blocks, conversation.Options{
		Marker:     cfg.Marker,
		NoResponse: cfg.NoResponse,
	})
	if set.SkippedBlocks() > 0 {
		fmt.Fprintf(os.Stderr, "skipped %d unparseable blocks\n", set.SkippedBlocks())
	}
	fmt.Printf("Reconstructed %d conversations\n\n", set.Len())

	return set
}

func printMatches(r *render.Renderer, convs []conversation.Conversation) {
	if len(convs) == 0 {
		fmt.Println("No matching conversations.")
		return
	}
	for _, c := range convs {
		fmt.Print(r.Detail(c))
	}
}

func inRange(convs []conversation.Conversation, from, to time.Time) []conversation.Conversation {
	var out []conversation.Conversation
	for _, c := range convs {
		if !from.IsZero() && c.StartTime.Before(from) {
			continue
		}
		if !to.IsZero() && !c.StartTime.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func runWatch(path string, cfg config.Config) {
	pass := func() error {
		set := analyze(path, cfg)
		r := render.New(cfg.Overview.FirstMessageWidth, cfg.Overview.Color)
		fmt.Print(r.Overview(set))
		return nil
	}

	if err := pass(); err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", path)

	if err := watch.Run(path, cfg.Debounce(), nil, pass); err != nil {
		fatal("%v", err)
	}
}

func argPath(cmd string) string {
	if len(os.Args) < 3 {
		fatal("usage: raglog %s <logfile>", cmd)
	}
	return os.Args[2]
}

// flagTime parses a --flag value as `2006-01-02 15:04:05` or `2006-01-02`.
func flagTime(args []string, flag string) time.Time {
	v := flagValue(args, flag)
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	fatal("%s: cannot parse %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)", flag, v)
	return time.Time{}
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func usage() {
	fmt.Fprintf(os.Stderr, `raglog v%s — RAG server log conversation miner

Usage:
  raglog analyze <logfile>                  Reconstruct conversations and explore them
  raglog stats <logfile>                    Aggregate statistics for a log
  raglog search <logfile> [<keyword>]       Print conversations matching a keyword
         [--since <ts>] [--until <ts>]      Restrict by start time
  raglog watch <logfile>                    Re-analyze whenever the log changes
  raglog version                            Print version
  raglog help                               Show this help

Log files may be plain text, .gz or .zst.
Configuration: ~/.config/raglog/config.toml
`, version)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "raglog: "+format+"\n", args...)
	os.Exit(1)
}
