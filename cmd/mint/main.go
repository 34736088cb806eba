package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"mint/interpreter-go/pkg/driver"
	"mint/interpreter-go/pkg/interpreter"
	"mint/interpreter-go/pkg/runtime"
)

const cliToolVersion = "mint 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "repl":
		return runRepl()
	case "run":
		return runScript(args[1:])
	default:
		return runScript(args)
	}
}

func runScript(args []string) int {
	var target string
	trace := false
	out := os.Stdout

	for _, arg := range args {
		if arg == "--trace" {
			trace = true
			continue
		}
		target = arg
	}

	if target == "" {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "mint run requires a source file (mint.yml not found)")
			return 1
		}
		target = manifest.Entry
		trace = trace || manifest.Trace
		if manifest.Output != "" {
			f, err := os.Create(manifest.Output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", manifest.Output, err)
				return 1
			}
			defer f.Close()
			out = f
		}
	}

	src, err := loadSource(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", target, err)
		return 1
	}

	return execute(src, out, trace)
}

// loadSource returns a script's text, fetching it from a git remote when
// arg names one (`<git-url>#<ref>:<path>`) or reading it from disk otherwise.
func loadSource(arg string) (string, error) {
	scriptTarget := driver.ParseScriptTarget(arg)
	if scriptTarget.URL != "" {
		return driver.FetchScript(scriptTarget)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func execute(src string, out *os.File, trace bool) int {
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(out)

	if trace {
		fmt.Fprintln(os.Stderr, "trace: starting evaluation")
	}

	_, err := interpreter.RunSource(src, closure, ctx)
	if trace {
		fmt.Fprintln(os.Stderr, "trace: evaluation finished")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func runRepl() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err == nil {
			if f, err := os.Create(historyPath); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}
	}()

	closure := runtime.NewClosure()
	ctx := runtime.NewContext(os.Stdout)

	for {
		input, err := line.Prompt("mint> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err.Error() == "EOF" {
				return 0
			}
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if _, err := interpreter.RunSource(input+"\n", closure, ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mint_history"
	}
	return filepath.Join(home, ".mint_history")
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath := filepath.Join(start, "mint.yml")
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  mint run <file.mint> [--trace]")
	fmt.Fprintln(os.Stderr, "  mint run <git-url>#<ref>:<path> [--trace]")
	fmt.Fprintln(os.Stderr, "  mint <file.mint>")
	fmt.Fprintln(os.Stderr, "  mint repl")
	fmt.Fprintln(os.Stderr, "  mint version")
}
