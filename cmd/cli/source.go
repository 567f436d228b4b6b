package main

import (
	"fmt"
	"io"
	"os"
)

const stdinName = "-"

// source is one snippet to process, named by its file path or "-".
type source struct {
	Name string
	Code string
}

// readSources reads every named file, or stdin when no names are given.
func readSources(names []string, stdin io.Reader) ([]source, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	sources := make([]source, 0, len(names))
	readStdin := false
	for _, name := range names {
		if name == stdinName {
			if readStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			readStdin = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			sources = append(sources, source{Name: stdinName, Code: string(data)})
			continue
		}

		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		sources = append(sources, source{Name: name, Code: string(data)})
	}
	return sources, nil
}
