package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bram/mem/bram"
)

func newLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Parse a memory initialization file and print its words.",
		Long: "`load --init FILE --width M` prints the address, the binary " +
			"value and the decimal value of every word of FILE.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := getString(cmd, "init")
			width := getInt(cmd, "width")
			depth := getInt(cmd, "depth")

			if path == "" {
				return fmt.Errorf("--init is required")
			}

			if width < 0 {
				return fmt.Errorf("--width cannot be negative")
			}

			words, err := bram.LoadFile(path, width)
			if err != nil {
				return err
			}

			if depth > 0 && len(words) != depth {
				return &bram.DepthMismatchError{
					Source: path,
					Depth:  depth,
					Words:  len(words),
				}
			}

			out := cmd.OutOrStdout()
			for addr, w := range words {
				fmt.Fprintf(out, "%d %s %s\n", addr, w, decimal(w))
			}

			return nil
		},
	}

	loadCmd.Flags().String("init", "", "memory initialization file")
	loadCmd.Flags().Int("width", 8, "number of bits per word")
	loadCmd.Flags().Int("depth", 0, "expected number of words, 0 to skip the check")

	return loadCmd
}

// decimal prints the value of a word, or - if it is unknown or does not fit
// in 64 bits.
func decimal(w bram.Word) string {
	v, ok := w.Uint64()
	if !ok {
		return "-"
	}

	return strconv.FormatUint(v, 10)
}
