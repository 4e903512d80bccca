package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pvdberg/listmotion/internal/diff"
	"github.com/pvdberg/listmotion/internal/model"
	"github.com/pvdberg/listmotion/internal/storage"
)

func main() {
	summary := flag.Bool("s", false, "Summary only (counts without per-operation lines)")
	lines := flag.Bool("lines", false, "Treat inputs as plain text, one item per line")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiff [options] <old> <new>

Computes the minimal edit script (inserts, removes, moves) that turns the
first sequence into the second. Inputs are task list JSON files by default;
items are matched by task ID.

Options:
  -s       Summary only (counts without per-operation lines)
  -lines   Treat inputs as plain text files, one item per line, matched
           by line content

Examples:
  # Script between two saved task lists
  seqdiff tasks-before.json tasks-after.json

  # Script between two text files
  seqdiff -lines old.txt new.txt

  # Just the counts
  seqdiff -s tasks-before.json tasks-after.json
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}

	var out []string
	var err error
	if *lines {
		out, err = diffLines(args[0], args[1])
	} else {
		out, err = diffTaskLists(args[0], args[1])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *summary {
		// The summary is always the last line of the script
		fmt.Println(out[len(out)-1])
		return
	}
	for _, line := range out {
		fmt.Println(line)
	}
}

// diffTaskLists diffs two task list JSON files by task ID
func diffTaskLists(oldPath, newPath string) ([]string, error) {
	oldList, err := storage.NewJSONStore(oldPath).Load()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", oldPath, err)
	}
	newList, err := storage.NewJSONStore(newPath).Load()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", newPath, err)
	}

	ops, err := diff.Diff(oldList.Tasks, newList.Tasks, func(a, b *model.Task) bool {
		return a.ID == b.ID
	})
	if err != nil {
		return nil, err
	}

	return diff.FormatScript(ops, func(t *model.Task) string {
		return fmt.Sprintf("%q", t.Text)
	}), nil
}

// diffLines diffs two text files line by line; the line content is the
// identity, so duplicate lines in one file are an error
func diffLines(oldPath, newPath string) ([]string, error) {
	oldLines, err := readLines(oldPath)
	if err != nil {
		return nil, err
	}
	newLines, err := readLines(newPath)
	if err != nil {
		return nil, err
	}

	ops, err := diff.Diff(oldLines, newLines, func(a, b string) bool {
		return a == b
	})
	if err != nil {
		return nil, err
	}

	return diff.FormatScript(ops, func(s string) string {
		return fmt.Sprintf("%q", s)
	}), nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
