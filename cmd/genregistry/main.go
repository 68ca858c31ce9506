// Command genregistry reads the registry description files under
// registry/ and emits the generated Go sources that declare the
// scalar/pointer C-type ids (ctypes) and entrypoint ids (entry) the
// rest of the module is built against.
//
// Unlike internal/gendefs, which splices extracted C values into an
// existing Go const block, genregistry has no pre-existing Go AST to
// edit: the registry files are the only source of truth, so it emits
// whole files from scratch and runs them through go/format.Source
// rather than go/printer.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"

	"github.com/tracegl/gltrace/internal/regdesc"
)

var (
	namespacesPath  = flag.String("namespaces", "registry/namespaces.txt", "path to the namespace registry source")
	ctypesPath      = flag.String("ctypes", "registry/ctypes.txt", "path to the C-type registry source")
	entrypointsPath = flag.String("entrypoints", "registry/entrypoints.txt", "path to the entrypoint registry source")
	outCtypes       = flag.String("out-ctypes", "ctypes/ztypes_gen.go", "output path for the generated ctypes file")
	outEntry        = flag.String("out-entry", "entry/zentry_gen.go", "output path for the generated entry file")
)

func main() {
	flag.Parse()

	namespaces := readRegistry(*namespacesPath, regdesc.Namespaces)
	ctypes := readRegistry(*ctypesPath, regdesc.CTypes)
	entrypoints := readRegistry(*entrypointsPath, regdesc.Entrypoints)

	nsSet := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		nsSet[ns] = true
	}
	ctypeSet := make(map[string]bool, len(ctypes))
	for _, ct := range ctypes {
		ctypeSet[ct.ID] = true
	}
	if err := validate(ctypes, entrypoints, nsSet, ctypeSet); err != nil {
		log.Fatal(err)
	}

	writeFile(*outCtypes, genCTypes(ctypes))
	writeFile(*outEntry, genEntry(entrypoints))
}

func readRegistry[T any](path string, parse func([]byte) (T, error)) T {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	v, err := parse(src)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	return v
}

func validate(ctypes []regdesc.CType, entrypoints []regdesc.Entrypoint, nsSet, ctypeSet map[string]bool) error {
	for _, ct := range ctypes {
		if ct.PointerDepth > 0 && !ctypeSet[ct.Elem] {
			return fmt.Errorf("ctype %s: unknown element type %s", ct.ID, ct.Elem)
		}
	}
	for _, ep := range entrypoints {
		if !ctypeSet[ep.Return] {
			return fmt.Errorf("entrypoint %s: unknown return type %s", ep.ID, ep.Return)
		}
		if ep.ReturnNamespace != "" && !nsSet[ep.ReturnNamespace] {
			return fmt.Errorf("entrypoint %s: unknown return namespace %s", ep.ID, ep.ReturnNamespace)
		}
		for _, p := range ep.Params {
			if !ctypeSet[p.Type] {
				return fmt.Errorf("entrypoint %s: param %s: unknown type %s", ep.ID, p.Name, p.Type)
			}
			if p.Namespace != "" && !nsSet[p.Namespace] {
				return fmt.Errorf("entrypoint %s: param %s: unknown namespace %s", ep.ID, p.Name, p.Namespace)
			}
		}
	}
	return nil
}

func genCTypes(ctypes []regdesc.CType) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by cmd/genregistry from registry/ctypes.txt. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package ctypes\n\n")
	fmt.Fprintf(&b, "// Scalar and pointer type ids. Stable across recorder/replayer\n// versions sharing this registry generation.\nconst (\n")
	for i, ct := range ctypes {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s ID = iota + 1\n", ct.ID)
		} else {
			fmt.Fprintf(&b, "\t%s\n", ct.ID)
		}
	}
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "var generatedTypes = []Type{\n")
	for _, ct := range ctypes {
		fmt.Fprintf(&b, "\t{ID: %s, Name: %q, Size: %d", ct.ID, ct.Name, ct.Size)
		if ct.PointerDepth > 0 {
			fmt.Fprintf(&b, ", PointerDepth: %d, Elem: %s", ct.PointerDepth, ct.Elem)
		}
		if ct.Signed {
			fmt.Fprintf(&b, ", Signed: true")
		}
		if ct.IsEnum {
			fmt.Fprintf(&b, ", IsEnum: true")
		}
		if ct.IsOpaquePointer {
			fmt.Fprintf(&b, ", IsOpaquePointer: true")
		}
		fmt.Fprintf(&b, "},\n")
	}
	fmt.Fprintf(&b, "}\n")

	return gofmt(b.Bytes())
}

func genEntry(entrypoints []regdesc.Entrypoint) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by cmd/genregistry from registry/entrypoints.txt. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package entry\n\n")
	fmt.Fprintf(&b, "import (\n\t\"github.com/tracegl/gltrace/ctypes\"\n\t\"github.com/tracegl/gltrace/handle\"\n)\n\n")
	fmt.Fprintf(&b, "// Entrypoint ids. Stable across recorder/replayer versions sharing\n// this registry generation.\nconst (\n")
	for i, ep := range entrypoints {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s ID = iota + 1\n", ep.ID)
		} else {
			fmt.Fprintf(&b, "\t%s\n", ep.ID)
		}
	}
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "var generatedEntrypoints = []Entrypoint{\n")
	for _, ep := range entrypoints {
		fmt.Fprintf(&b, "\t{ID: %s, Name: %q, Return: ctypes.%s, Flags: %s", ep.ID, ep.Name, ep.Return, joinFlags(ep.Flags))
		if ep.ReturnNamespace != "" {
			fmt.Fprintf(&b, ", ReturnNamespace: handle.%s", ep.ReturnNamespace)
		}
		if len(ep.Params) == 0 {
			fmt.Fprintf(&b, ", Params: nil}")
		} else {
			fmt.Fprintf(&b, ", Params: []Param{\n")
			for _, p := range ep.Params {
				dir := "In"
				if p.Direction == "out" {
					dir = "Out"
				}
				fmt.Fprintf(&b, "\t\t{Name: %q, Type: ctypes.%s", p.Name, p.Type)
				if p.Namespace != "" {
					fmt.Fprintf(&b, ", Namespace: handle.%s", p.Namespace)
				}
				fmt.Fprintf(&b, ", Direction: %s},\n", dir)
			}
			fmt.Fprintf(&b, "\t}}")
		}
		fmt.Fprintf(&b, ",\n")
	}
	fmt.Fprintf(&b, "}\n")

	return gofmt(b.Bytes())
}

func joinFlags(flags []string) string {
	if len(flags) == 0 {
		return "0"
	}
	s := ""
	for i, f := range flags {
		if i > 0 {
			s += " | "
		}
		s += "Flag" + f
	}
	return s
}

func gofmt(src []byte) []byte {
	out, err := format.Source(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s", src)
		log.Fatal(err)
	}
	return out
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal(err)
	}
}
