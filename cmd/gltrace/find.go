package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/tracegl/gltrace/ctypes"
	"github.com/tracegl/gltrace/entry"
	"github.com/tracegl/gltrace/handle"
	"github.com/tracegl/gltrace/packet"
	"github.com/tracegl/gltrace/tracefile"
)

type findFlags struct {
	nameRegexp string
	value      uint64
	hasValue   bool
	namespace  string
	frameMin   int
	frameMax   int
	callMin    uint64
	callMax    uint64
}

func newFindCmd() *cobra.Command {
	var fl findFlags
	cmd := &cobra.Command{
		Use:   "find <trace>",
		Short: "Stream packets matching a name/value/range filter to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0], fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.nameRegexp, "name", "", "regex matched against the entrypoint name")
	f.Uint64Var(&fl.value, "value", 0, "handle or scalar value to match (see --has-value)")
	f.BoolVar(&fl.hasValue, "has-value", false, "enable the --value filter")
	f.StringVar(&fl.namespace, "namespace", "", "restrict --value matches to this handle namespace")
	f.IntVar(&fl.frameMin, "frame-min", -1, "minimum frame (-1: unbounded)")
	f.IntVar(&fl.frameMax, "frame-max", -1, "maximum frame (-1: unbounded)")
	f.Uint64Var(&fl.callMin, "call-min", 0, "minimum call counter")
	f.Uint64Var(&fl.callMax, "call-max", 0, "maximum call counter (0: unbounded)")
	return cmd
}

func runFind(cmd *cobra.Command, path string, fl findFlags) error {
	log := logEntry()
	reader, err := tracefile.Open(path, "", log)
	if err != nil {
		return err
	}
	defer reader.Close()
	entries := entry.Default()
	types := ctypes.Default()
	reader.DecodeOptions.Entrypoints = entries
	reader.DecodeOptions.Types = types

	var nameRe *regexp.Regexp
	if fl.nameRegexp != "" {
		nameRe, err = regexp.Compile(fl.nameRegexp)
		if err != nil {
			return err
		}
	}
	var ns handle.Namespace
	if fl.namespace != "" {
		ns, err = parseFindNamespace(fl.namespace)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	frame := 0
	matched := 0

	for {
		p, err := reader.ReadNextPacket()
		if err == tracefile.ErrEOF {
			break
		}
		if err != nil {
			return err
		}
		ep := entries.EntrypointByID(p.EntrypointID)

		if fl.frameMin >= 0 && frame < fl.frameMin {
			if advanceFindFrame(ep) {
				frame++
			}
			continue
		}
		if fl.frameMax >= 0 && frame > fl.frameMax {
			break
		}
		if p.CallCounter < fl.callMin || (fl.callMax != 0 && p.CallCounter > fl.callMax) {
			if advanceFindFrame(ep) {
				frame++
			}
			continue
		}
		if nameRe != nil && (ep == nil || !nameRe.MatchString(ep.Name)) {
			if advanceFindFrame(ep) {
				frame++
			}
			continue
		}
		if fl.hasValue && !packetReferencesValue(p, ep, fl.value, ns, fl.namespace != "") {
			if advanceFindFrame(ep) {
				frame++
			}
			continue
		}

		name := "?"
		if ep != nil {
			name = ep.Name
		}
		fmt.Fprintf(out, "frame=%d call=%d %s\n", frame, p.CallCounter, name)
		matched++

		if advanceFindFrame(ep) {
			frame++
		}
	}

	fmt.Fprintf(out, "%d packet(s) matched\n", matched)
	return nil
}

func advanceFindFrame(ep *entry.Entrypoint) bool {
	return ep != nil && ep.Flags.Swap()
}

// maxNamespaceScan bounds parseFindNamespace's linear scan since
// handle.numNamespaces isn't exported; comfortably above the known
// namespace count (spec §3.3 lists 16).
const maxNamespaceScan = 32

func parseFindNamespace(name string) (handle.Namespace, error) {
	for ns := handle.None; ns < maxNamespaceScan; ns++ {
		if ns.String() == name {
			return ns, nil
		}
	}
	return handle.None, fmt.Errorf("find: unknown handle namespace %q", name)
}

// packetReferencesValue reports whether p's return or any scalar
// param carries value, optionally restricted to params/returns in ns.
func packetReferencesValue(p *packet.Packet, ep *entry.Entrypoint, value uint64, ns handle.Namespace, restrictNamespace bool) bool {
	if ep == nil {
		return false
	}
	if p.Return != nil && p.Return.ValueBits == value {
		if !restrictNamespace || ep.ReturnNamespace == ns {
			return true
		}
	}
	for i, rp := range p.Params {
		if rp.ClientMem != nil || i >= len(ep.Params) {
			continue
		}
		if rp.ValueBits == value {
			if !restrictNamespace || ep.Params[i].Namespace == ns {
				return true
			}
		}
	}
	return false
}
