package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/trailerboard/internal/tui"
)

var tuiSort []string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive order board",
	Long:  "Launch a terminal UI showing the order board with live status and column sorting.",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringArrayVar(&tuiSort, "sort", nil, "Initial sort column[:asc|desc]")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Logs go to a file so they do not draw over the alt screen.
	logPath := filepath.Join(os.TempDir(), "trailerboard-tui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open tui log: %w", err)
	}
	defer logFile.Close()

	a, err := openApp(cmd.Context(), logFile)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.services.Board, tui.Options{Sort: parseSortFlags(tuiSort)})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
