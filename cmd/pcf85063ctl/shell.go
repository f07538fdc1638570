//go:build linux
// +build linux

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/peterh/liner"

	"github.com/tinyrtc/drivers/pcf85063"
)

const historyFile = ".pcf85063ctl_history"

// shell reads commands from the terminal until EOF or "quit".
func shell(dev *pcf85063.Device, w io.Writer) error {
	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	history := filepath.Join(os.TempDir(), historyFile)
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(history); err == nil {
		_, _ = term.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.Create(history)
		if err != nil {
			log.Printf("could not save history: %+v", err)
			return
		}
		defer f.Close()
		_, _ = term.WriteHistory(f)
	}()

	for {
		line, err := term.Prompt("pcf85063> ")
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(w)
			return nil
		case err != nil:
			return err
		}
		quit, err := execLine(dev, line, w)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		if line != "" {
			term.AppendHistory(line)
		}
		if quit {
			return nil
		}
	}
}

// execLine runs one shell line. It reports whether the shell should exit.
func execLine(dev *pcf85063.Device, line string, w io.Writer) (bool, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, strings.Join(names, " "))
		return false, nil
	case "shell", "mqtt":
		return false, fmt.Errorf("%s is not available from the shell", args[0])
	}
	return false, run(dev, args, w)
}
