package main

import (
	"fmt"
	"os"

	"github.com/burntcarrot/blockbreak/breakout"
	"github.com/burntcarrot/blockbreak/editor"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	// Global logger.
	logger = logrus.New()

	// Command-line flags.
	flags Flags
)

func main() {
	// Parse flags.
	flags = parseFlags()

	// Set up logging.
	closeLogs, err := initLogging(logger, flags)
	if err != nil {
		fmt.Printf("Failed to set up logger: %s\n", err)
		os.Exit(1)
	}
	defer closeLogs()

	// Load breakout options.
	opts, err := loadOptions(flags.Options)
	if err != nil {
		color.Red("Failed to load options: %s\n", err)
		os.Exit(1)
	}
	opts.Logger = logger

	// Load the document.
	doc, err := loadDocument(flags.File)
	if err != nil {
		color.Red("Failed to load document: %s\n", err)
		os.Exit(1)
	}

	e, err := editor.NewEditor(doc, editor.EditorConfig{
		Handlers: []editor.ReturnHandler{breakout.New(opts)},
		Logger:   logger,
	})
	if err != nil {
		color.Red("Failed to create editor: %s\n", err)
		os.Exit(1)
	}

	if flags.Dump {
		dumpDocument(os.Stdout, e.State())
		return
	}

	// Start the UI.
	if err := UI(e); err != nil {
		logger.Errorf("UI error: %v", err)
		color.Red("%s\n", err)
		os.Exit(1)
	}
}
