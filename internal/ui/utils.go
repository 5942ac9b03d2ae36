package ui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/forest-guardian/landcover-samples/internal/properties"
)

var (
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgBlue)
)

var input = bufio.NewReader(os.Stdin)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	warnColor.Fprintln(color.Output, "\nWarning:")
	warnColor.Fprintln(color.Output, message)
}

func PrintError(message string) {
	errorColor.Fprintf(color.Output, "\nError: %s\n", message)
}

func PrintSuccess(message string) {
	successColor.Fprintf(color.Output, "\n%s\n", message)
}

func PrintInfo(message string) {
	infoColor.Fprint(color.Output, message)
}

// ReadString reads a line from stdin with trimming
func ReadString(prompt string) string {
	PrintInfo(prompt)
	line, _ := input.ReadString('\n')
	return strings.TrimSpace(line)
}

// ReadInt reads an integer in [min, max]
func ReadInt(prompt string, min, max int) (int, error) {
	text := ReadString(prompt)
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", text)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadOptionalFloat returns nil on an empty answer.
func ReadOptionalFloat(prompt string) (*float64, error) {
	text := ReadString(prompt)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number: %s", text)
	}
	return &v, nil
}

// ReadBands parses a comma separated list of 1-based band numbers into
// zero-based indices. An empty answer selects every band.
func ReadBands(prompt string) ([]int, error) {
	text := ReadString(prompt)
	if text == "" {
		return nil, nil
	}
	var bands []int
	for _, part := range strings.Split(text, ",") {
		b, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || b < 1 {
			return nil, fmt.Errorf("invalid band number: %s", part)
		}
		bands = append(bands, b-1)
	}
	return bands, nil
}

func ReadYesNo(prompt string) bool {
	answer := strings.ToLower(ReadString(prompt + " (y/N): "))
	return answer == "y" || answer == "yes"
}

// ListFiles returns the files of ROOT_PATH/data/<dir> with one of exts,
// sorted by name.
func ListFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(properties.DataPath(dir))
	if err != nil {
		return nil, fmt.Errorf("error reading %s folder: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if len(exts) == 0 || slices.Contains(exts, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// SelectFile lists the matching files of a data folder and returns the full
// path of the chosen one.
func SelectFile(title, dir string, exts ...string) (string, error) {
	files, err := ListFiles(dir, exts...)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s files found in data/%s", strings.Join(exts, ", "), dir)
	}

	successColor.Fprintf(color.Output, "\n%s:\n", title)
	for i, f := range files {
		successColor.Fprintf(color.Output, "%d. %s\n", i+1, f)
	}
	choice, err := ReadInt("Enter the number of the file you want to use: ", 1, len(files))
	if err != nil {
		return "", err
	}
	return properties.DataPath(dir, files[choice-1]), nil
}

// OutputPath returns ROOT_PATH/data/<dir>/<name>, creating the folder.
func OutputPath(dir, name string) (string, error) {
	folder := properties.DataPath(dir)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s folder: %w", dir, err)
	}
	return filepath.Join(folder, name), nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
