package cmd

import (
	"errors"
	"io"
	"strings"
)

var errConfigValue = errors.New("--config requires a file path")

// splitConfigFlag pulls a leading --config <path> (or --config=<path>) off
// args. Flags anywhere else are ordinary command words.
func splitConfigFlag(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", args, nil
	}
	if v, ok := strings.CutPrefix(args[0], "--config="); ok {
		if v == "" {
			return "", nil, errConfigValue
		}
		return v, args[1:], nil
	}
	if args[0] != "--config" {
		return "", args, nil
	}
	if len(args) < 2 || args[1] == "" {
		return "", nil, errConfigValue
	}
	return args[1], args[2:], nil
}

// commandText joins the positional arguments into the command, falling back
// to the whole of stdin when there are none.
func commandText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
