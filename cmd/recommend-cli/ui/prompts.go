package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt asks the user for input with a prompt message.
func Prompt(message string) (string, error) {
	fmt.Fprintf(os.Stdout, "%s: ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadLine reads one trimmed line from r, showing the given prompt first.
// io.EOF signals the input stream ended (Ctrl-D).
func ReadLine(r *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stdout, prompt)
	input, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(input) != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Confirm asks the user for a yes/no confirmation.
func Confirm(message string, defaultValue bool) (bool, error) {
	defaultStr := "y/N"
	if defaultValue {
		defaultStr = "Y/n"
	}

	input, err := Prompt(fmt.Sprintf("%s [%s]", message, defaultStr))
	if err != nil {
		return false, err
	}

	trimmed := strings.ToLower(input)
	if trimmed == "" {
		return defaultValue, nil
	}
	return trimmed == "y" || trimmed == "yes", nil
}
