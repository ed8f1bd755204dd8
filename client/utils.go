package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/burntcarrot/blockbreak/breakout"
	"github.com/burntcarrot/blockbreak/content"
	"github.com/burntcarrot/blockbreak/editor"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Flags represents the command-line flags that are passed to blockbreak.
type Flags struct {
	File    string
	Options string
	Debug   bool
	Dump    bool
}

// parseFlags parses command-line flags.
func parseFlags() Flags {
	file := flag.String("file", "", "The YAML file to load the document from, and save it to")
	options := flag.String("options", "", "The YAML file holding the breakout options")
	enableDebug := flag.Bool("debug", false, "Enable debugging mode to show more verbose logs")
	dump := flag.Bool("dump", false, "Print the document and exit")

	flag.Parse()

	return Flags{
		File:    *file,
		Options: *options,
		Debug:   *enableDebug,
		Dump:    *dump,
	}
}

// loadOptions reads breakout options from path. An empty path yields the
// defaults.
func loadOptions(path string) (breakout.Options, error) {
	if path == "" {
		return breakout.Options{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return breakout.Options{}, err
	}
	defer f.Close()

	return breakout.LoadOptions(f)
}

// loadDocument reads the document from path. A missing file yields an empty
// document, so that it gets created on the first save.
func loadDocument(path string) (content.Document, error) {
	if path == "" {
		return content.NewDocument()
	}

	doc, err := content.Load(path, nil)
	if os.IsNotExist(err) {
		logger.Infof("document %s does not exist, starting empty", path)
		return content.NewDocument()
	}
	return doc, err
}

// dumpDocument prints every block, one per line.
func dumpDocument(w io.Writer, s editor.EditorState) {
	keyColor := color.New(color.FgYellow)
	typeColor := color.New(color.FgCyan)
	caretColor := color.New(color.FgGreen, color.Bold)

	for _, block := range s.Content().Blocks() {
		marker := " "
		if block.Key == s.Selection().FocusKey {
			marker = caretColor.Sprint(">")
		}

		fmt.Fprintf(w, "%s %s %s %s %q\n",
			marker,
			keyColor.Sprintf("%-8s", block.Key),
			typeColor.Sprintf("%-20s", block.Type),
			fmt.Sprintf("depth=%d", block.Depth),
			block.Text,
		)
	}
}

// ensureDirExists ensures that a directory exists, and if it isn't present, it tries to create a new one.
// It reports false when path exists but is not a directory.
func ensureDirExists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err == nil {
		return fi.IsDir(), nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.Mkdir(path, 0700); err != nil {
		return false, err
	}
	return true, nil
}

// logDir returns ~/.blockbreak, or "" (the working directory) when it is
// not usable.
func logDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	dir := filepath.Join(homeDir, ".blockbreak")
	if ok, err := ensureDirExists(dir); err != nil || !ok {
		return ""
	}
	return dir
}

// initLogging configures the logger for the run. In dump mode nothing is
// logged, so that log lines don't end up in the printed document. The
// returned func releases the log files.
func initLogging(logger *logrus.Logger, f Flags) (func(), error) {
	if f.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if f.Dump {
		logger.SetOutput(io.Discard)
		return func() {}, nil
	}

	logFile, debugLogFile, err := setupLogger(logger, logDir())
	if err != nil {
		return nil, err
	}

	return func() { closeLogFiles(logFile, debugLogFile) }, nil
}

// setupLogger routes the logger into two JSON log files in dir: warnings and
// errors into blockbreak.log, everything else into blockbreak-debug.log.
func setupLogger(logger *logrus.Logger, dir string) (*os.File, *os.File, error) {
	logFile, err := openLogFile(filepath.Join(dir, "blockbreak.log"))
	if err != nil {
		return nil, nil, err
	}

	debugLogFile, err := openLogFile(filepath.Join(dir, "blockbreak-debug.log"))
	if err != nil {
		logFile.Close()
		return nil, nil, err
	}

	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})

	return logFile, debugLogFile, nil
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
}

// closeLogFiles closes the log files created by blockbreak.
// closeLogFiles is meant to be used for defer calls.
func closeLogFiles(logFile, debugLogFile *os.File) {
	if err := logFile.Close(); err != nil {
		fmt.Printf("Failed to close log file: %s", err)
		return
	}

	if err := debugLogFile.Close(); err != nil {
		fmt.Printf("Failed to close debug log file: %s", err)
		return
	}
}
