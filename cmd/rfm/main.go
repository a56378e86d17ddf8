// Command rfm is a terminal Miller-columns file manager: three panes
// showing the parent, current, and preview of the working directory,
// navigable with vi-style keys.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/rfm/internal/logbuf"
	"github.com/wilbur182/rfm/internal/markdown"
	"github.com/wilbur182/rfm/internal/panel"
	"github.com/wilbur182/rfm/internal/trash"
)

const version = "0.1.0"

func main() {
	startPath := flag.String("path", ".", "directory to open")
	debug := flag.Bool("debug", false, "enable debug logging")
	hidden := flag.Bool("hidden", false, "show hidden files on launch")
	cdToFile := flag.String("cd-to-file", "", "write the final working directory to this path on exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("rfm " + version)
		return
	}

	abs, err := filepath.Abs(*startPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rfm:", err)
		os.Exit(1)
	}

	logBuf := logbuf.NewBuffer(200)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	handler := logbuf.NewHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}), logBuf)
	logger := slog.New(handler)

	tr, err := trash.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rfm: could not create trash directory:", err)
		os.Exit(1)
	}
	defer tr.Close()

	md, err := markdown.NewRenderer(logger)
	if err != nil {
		logger.Warn("markdown renderer unavailable", "err", err)
	}

	m := panel.New(abs, logger, logBuf, md, tr)
	if *hidden {
		m.SetShowHidden(true)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rfm:", err)
		os.Exit(1)
	}

	final, ok := finalModel.(*panel.Manager)
	if !ok {
		return
	}
	path := final.FinalPath()
	if path == "" {
		return
	}
	if *cdToFile != "" {
		if err := os.WriteFile(*cdToFile, []byte(path+"\n"), 0o644); err != nil {
			logger.Error("could not write cd-to-file", "path", *cdToFile, "err", err)
		}
		return
	}
	fmt.Println(path)
}
