package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/tracefile"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <trace>",
		Short: "Print a trace file's SOF fields, call histogram, and swap count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
	return cmd
}

func runInfo(cmd *cobra.Command, path string) error {
	log := logEntry()
	reader, err := tracefile.Open(path, "", log)
	if err != nil {
		return err
	}
	defer reader.Close()
	entries := entry.Default()
	reader.DecodeOptions.Entrypoints = entries

	sof := reader.SOF()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "uuid: %s\n", sof.UUID)
	fmt.Fprintf(out, "version: %d\n", sof.Version)
	fmt.Fprintf(out, "pointer size: %d\n", sof.PointerSize)

	histogram := make(map[string]int)
	nonWhitelisted := make(map[string]bool)
	swaps := 0

	for {
		p, err := reader.ReadNextPacket()
		if err == tracefile.ErrEOF {
			break
		}
		if err != nil {
			return err
		}
		ep := entries.EntrypointByID(p.EntrypointID)
		if ep == nil {
			continue
		}
		histogram[ep.Name]++
		if ep.Flags.Swap() {
			swaps++
		}
		if !ep.Flags.Whitelisted() {
			nonWhitelisted[ep.Name] = true
		}
	}

	fmt.Fprintf(out, "swap count: %d\n", swaps)

	names := make([]string, 0, len(histogram))
	for name := range histogram {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(out, "call histogram (%d distinct entrypoints):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(out, "  %-32s %d\n", name, histogram[name])
	}

	if len(nonWhitelisted) > 0 {
		nwNames := make([]string, 0, len(nonWhitelisted))
		for name := range nonWhitelisted {
			nwNames = append(nwNames, name)
		}
		sort.Strings(nwNames)
		fmt.Fprintf(out, "non-whitelisted calls seen: %v\n", nwNames)
	}

	return nil
}
