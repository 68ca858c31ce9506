package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/tracefile"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <jsonbase> <bin>",
		Short: "Encode sharded document-form JSON files back into a binary trace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runParse(cmd *cobra.Command, jsonbase, binPath string) error {
	log := logEntry()
	entries := entry.Default()
	types := ctypes.Default()

	archive, err := blob.OpenDirArchive(jsonbase + "_blobs")
	if err != nil {
		return err
	}

	shards, err := filepath.Glob(jsonbase + "_*.json")
	if err != nil {
		return err
	}
	sort.Strings(shards)
	if len(shards) == 0 {
		return fmt.Errorf("parse: no shard files matching %s_*.json", jsonbase)
	}

	tw, err := tracefile.Create(binPath, blob.NewMemArchive(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tw.Abort()
		}
	}()

	count := 0
	for _, shardPath := range shards {
		data, rerr := os.ReadFile(shardPath)
		if rerr != nil {
			err = rerr
			return err
		}
		var docs []jsoniterRawDoc
		if uerr := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &docs); uerr != nil {
			err = uerr
			return err
		}
		for _, doc := range docs {
			p, derr := packet.DecodeDocument(doc, entries, types, archive)
			if derr != nil {
				err = fmt.Errorf("parse: %s: %w", shardPath, derr)
				return err
			}
			raw, eerr := packet.Encode(p)
			if eerr != nil {
				err = eerr
				return err
			}
			ep := entries.EntrypointByID(p.EntrypointID)
			isSwap := ep != nil && ep.Flags.Swap()
			if werr := tw.WritePacket(raw, isSwap); werr != nil {
				err = werr
				return err
			}
			count++
		}
	}

	if err = tw.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "parsed %d packets from %d shard(s) into %s\n", count, len(shards), binPath)
	return nil
}
