package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/blob"
)

// documentEntryName is the blob name the pack_json/unpack_json
// container reserves for the embedded document payload.
const documentEntryName = "document.json"

func newPackJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack_json <doc.json> <doc.bin>",
		Short: "Pack a textual JSON document into the binary (zstd) container encoding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackJSON(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runPackJSON(cmd *cobra.Command, jsonPath, binPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return err
	}
	archive := blob.NewMemArchive()
	archive.Compress = true
	if _, err := archive.Put(documentEntryName, data); err != nil {
		return err
	}

	out, err := os.Create(binPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := archive.Serialize(out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "packed %d bytes into %s\n", len(data), binPath)
	return nil
}

func newUnpackJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack_json <doc.bin> <doc.json>",
		Short: "Unpack the binary container encoding back to a textual JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpackJSON(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runUnpackJSON(cmd *cobra.Command, binPath, jsonPath string) error {
	f, err := os.Open(binPath)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}

	archive := blob.NewMemArchive()
	if err := archive.Deserialize(f, fi.Size()); err != nil {
		return err
	}
	data, err := archive.Get(documentEntryName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "unpacked %d bytes into %s\n", len(data), jsonPath)
	return nil
}
