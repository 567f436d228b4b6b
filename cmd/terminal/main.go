package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/corrector"
	"github.com/sevigo/code-reviewer/internal/syntax"
)

func main() {
	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, dracula)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	// The alternate screen owns the terminal, so logs go to a file.
	cfg.Logging.Output = "file"

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("CODE_REVIEWER_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(ThemeCyan)
	}
	theme := ThemeName(selectedTheme)
	if !slices.Contains(ListThemes(), theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := initialModel(ctx, cfg, theme, syntax.NewValidator(), corrector.Default())
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(*model); ok && fm.cleanup != nil {
		fm.cleanup()
	}
	if err != nil {
		slog.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
