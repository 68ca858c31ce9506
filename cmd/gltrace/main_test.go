package main

import "testing"

func TestRootCmdRegistersAllSubcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"replay", "dump", "parse", "info", "find", "pack_json", "unpack_json", "compare_hash_files"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (err=%v)", name, err)
		}
	}
}

func TestParseFindNamespaceKnownAndUnknown(t *testing.T) {
	if _, err := parseFindNamespace("Texture"); err != nil {
		t.Fatalf("parseFindNamespace(Texture): %v", err)
	}
	if _, err := parseFindNamespace("NotARealNamespace"); err == nil {
		t.Fatal("expected an error for an unknown namespace name")
	}
}
