package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/goiq/shape"
)

// loadInput reads the document named by args, or stdin when args is empty,
// and returns it as a value the extraction functions can walk. JSON stays
// raw and is only decoded along the requested path.
func loadInput(cmd *cobra.Command, args []string) (any, error) {
	var (
		data []byte
		err  error
		name string
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		name = args[0]
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	kind, err := cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = inputKind(name)
	}
	switch kind {
	case "json":
		raw := shape.RawJSON(data)
		if err := checkJSON(cmd, raw); err != nil {
			return nil, err
		}
		return raw, nil
	case "yaml", "yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("unknown input format %q", kind)
}

func inputKind(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// checkJSON looks for duplicate keys and excess nesting when --strict is
// set. Without it a duplicated key resolves to its first occurrence.
func checkJSON(cmd *cobra.Command, raw shape.RawJSON) error {
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil || !strict {
		return err
	}
	depth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return err
	}
	return raw.Check(depth)
}
