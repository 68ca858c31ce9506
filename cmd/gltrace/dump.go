package main

import (
	"bytes"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/blob"
	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/tracefile"
)

// packetsPerShard bounds how many document packets land in one output
// file (spec §6.4 "one output file per ~N packets").
const packetsPerShard = 1000

var dumpJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func newDumpCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "dump <bin> <jsonbase>",
		Short: "Decode a binary trace to sharded document-form JSON files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], args[1], verify)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "round-trip each decoded document back through the binary codec and compare")
	return cmd
}

func runDump(cmd *cobra.Command, binPath, jsonbase string, verify bool) error {
	log := logEntry()
	reader, err := tracefile.Open(binPath, "", log)
	if err != nil {
		return err
	}
	defer reader.Close()
	entries := entry.Default()
	types := ctypes.Default()
	reader.DecodeOptions.Entrypoints = entries
	reader.DecodeOptions.Types = types

	archive, err := blob.OpenDirArchive(jsonbase + "_blobs")
	if err != nil {
		return err
	}

	shard := 0
	var docs []jsoniterRawDoc
	flush := func() error {
		if len(docs) == 0 {
			return nil
		}
		path := fmt.Sprintf("%s_%04d.json", jsonbase, shard)
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := dumpJSON.NewEncoder(out).Encode(docs); err != nil {
			return err
		}
		log.WithField("packets", len(docs)).Debug("wrote document shard " + path)
		shard++
		docs = docs[:0]
		return nil
	}

	count := 0
	for {
		p, err := reader.ReadNextPacket()
		if err == tracefile.ErrEOF {
			break
		}
		if err != nil {
			return err
		}

		raw, err := packet.EncodeDocument(p, entries, types, archive)
		if err != nil {
			return err
		}
		if verify {
			back, err := packet.DecodeDocument(raw, entries, types, archive)
			if err != nil {
				return fmt.Errorf("dump: verify round-trip at call %d: %w", p.CallCounter, err)
			}
			want, err := packet.Encode(p)
			if err != nil {
				return err
			}
			got, err := packet.Encode(back)
			if err != nil {
				return err
			}
			if !bytes.Equal(got, want) {
				return fmt.Errorf("dump: verify round-trip at call %d: binary re-encoding differs after decode", p.CallCounter)
			}
		}
		docs = append(docs, jsoniterRawDoc(raw))
		count++

		if len(docs) >= packetsPerShard {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "dumped %d packets across %d shard(s) to %s_NNNN.json\n", count, shard, jsonbase)
	return nil
}

// jsoniterRawDoc marshals as the already-encoded document bytes
// verbatim, so shard files are JSON arrays of packet objects rather
// than arrays of escaped strings.
type jsoniterRawDoc []byte

func (d jsoniterRawDoc) MarshalJSON() ([]byte, error) { return d, nil }

func (d *jsoniterRawDoc) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}
