// Command goiq extracts values from JSON or YAML documents by dotted path.
//
//	goiq get driver.ears car.json
//	goiq get passengers --format size car.yaml
//	cat car.json | goiq render "{driver.name} has {driver.ears} ears"
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reoring/goiq"
	"github.com/reoring/goiq/template"
)

// errNotFound makes the process exit with status 1 without a message.
var errNotFound = errors.New("not found")

const _formatSize = "size"

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, errNotFound):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "goiq:", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goiq",
		Short:         "Extract values from JSON or YAML documents by dotted path",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("input", "", "input format: json or yaml (default: by file extension, json for stdin)")
	root.PersistentFlags().Bool("strict", false, "reject JSON with duplicate object keys before extracting")
	root.PersistentFlags().Int("max-depth", 0, "with --strict, reject JSON nested deeper than this (0: no limit)")
	root.AddCommand(newGetCmd(), newRenderCmd())
	return root
}

func newGetCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get PATH [FILE]",
		Short: "Print the value at PATH",
		Long: "Print the value at PATH. Formats: primitive, json, pretty, yaml, size.\n" +
			"Exits with status 1 when PATH does not resolve.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadInput(cmd, args[1:])
			if err != nil {
				return err
			}
			path := goiq.ParsePath(args[0])
			if format == _formatSize {
				n, ok, err := goiq.ExtractSizeChecked(src, path)
				if err != nil {
					return err
				}
				if !ok {
					return errNotFound
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(n))
				return nil
			}
			f, ok := goiq.ParseFormat(format)
			if !ok {
				return fmt.Errorf("unknown format %q", format)
			}
			text, ok, err := goiq.ExtractStringChecked(src, path, f)
			if err != nil {
				return err
			}
			if !ok {
				return errNotFound
			}
			out := cmd.OutOrStdout()
			if f == goiq.FormatYAML {
				// the YAML encoder already ends the document with a newline
				_, err = fmt.Fprint(out, text)
				return err
			}
			_, err = fmt.Fprintln(out, text)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", goiq.FormatPrimitive.String(), "output format: primitive, json, pretty, yaml or size")
	return cmd
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render TEMPLATE [FILE]",
		Short: "Fill {path} placeholders of TEMPLATE from the document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadInput(cmd, args[1:])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), template.New(args[0]).Render(src))
			return err
		},
	}
}
