package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/hashfile"
)

func newCompareHashFilesCmd() *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "compare_hash_files <a.hash> <b.hash>",
		Short: "Compare two per-frame digest hash files, with an optional fuzzy threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompareHashFiles(cmd, args[0], args[1], threshold)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "maximum fraction of mismatching frames that still counts as a match")
	return cmd
}

func runCompareHashFiles(cmd *cobra.Command, aPath, bPath string, threshold float64) error {
	a, err := readHashFile(aPath)
	if err != nil {
		return err
	}
	b, err := readHashFile(bPath)
	if err != nil {
		return err
	}

	mismatches, matched := hashfile.Compare(a, b, threshold)
	out := cmd.OutOrStdout()
	for _, m := range mismatches {
		switch {
		case m.MissingA:
			fmt.Fprintf(out, "frame %d: missing from %s\n", m.Frame, aPath)
		case m.MissingB:
			fmt.Fprintf(out, "frame %d: missing from %s\n", m.Frame, bPath)
		default:
			fmt.Fprintf(out, "frame %d: %016x != %016x\n", m.Frame, m.A, m.B)
		}
	}
	fmt.Fprintf(out, "%d mismatch(es) of %d/%d frame(s); matched=%v\n", len(mismatches), len(a), len(b), matched)

	if !matched {
		return fmt.Errorf("compare_hash_files: %d mismatch(es) exceed threshold %.4f", len(mismatches), threshold)
	}
	return nil
}

func readHashFile(path string) ([]hashfile.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hashfile.Read(f)
}
