// Command layoutschema emits the JSON schema for chamber layout documents,
// for authoring-side validation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/faid1253/whispersoftheloop/layout"
)

func main() {
	out := flag.String("out", "chamber.schema.json", "Output path for the generated schema.")
	flag.Parse()

	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	schema := r.Reflect(&layout.Document{})
	schema.Title = "Chamber layout"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal schema:", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if err := writeAtomic(*out, data); err != nil {
		fmt.Fprintln(os.Stderr, "write schema:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".schema-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
