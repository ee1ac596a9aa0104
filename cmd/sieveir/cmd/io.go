package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sieveir/ir"
)

// loadMessages reads every path (or stdin, for "-") as a JSON message array
// produced by "sieveir example" or "sieveir flatten", concatenating them
// into a single stream in argument order.
func loadMessages(paths []string) ([]ir.Message, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var all []ir.Message
	for _, p := range paths {
		data, err := readFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		msgs, err := ir.DecodeMessages(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		all = append(all, msgs...)
	}
	return all, nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeMessages JSON-encodes msgs to path, or to stdout for "-".
func writeMessages(path string, msgs []ir.Message) error {
	data, err := ir.EncodeMessages(msgs)
	if err != nil {
		return err
	}
	return writeBytes(path, data)
}

func writeBytes(path string, data []byte) error {
	if path == "-" || path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
