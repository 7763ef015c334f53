// Command cep is the CLI surface over the canonicalization and identity
// core: hash and canonicalize built Entity documents, resolve an identity
// from raw fields, and validate a document against a JSON Schema.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/cepvalidate"
	"github.com/civic-interconnect/cep-core/pkg/entity"
	"github.com/civic-interconnect/cep-core/pkg/localize"
	"github.com/civic-interconnect/cep-core/pkg/snfei"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing: dispatch on the verb and delegate.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "hash":
		return runHash(args[2:], stdout, stderr)
	case "resolve":
		return runResolve(args[2:], stdout, stderr)
	case "canonicalize":
		return runCanonicalize(args[2:], stdout, stderr)
	case "validate":
		return runValidate(args[2:], stdout, stderr)
	case "version":
		return runVersion(stdout)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cep - Civic Exchange Protocol canonicalization and identity core")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  cep hash <file.json>")
	fmt.Fprintln(w, "  cep resolve <name> <country> [address] [date]")
	fmt.Fprintln(w, "  cep canonicalize <file.json>")
	fmt.Fprintln(w, "  cep validate <file.json> <schema.json>")
	fmt.Fprintln(w, "  cep version")
}

func runVersion(stdout io.Writer) int {
	fmt.Fprintln(stdout, cep.DisplaySchemaVersion())
	return 0
}

// entityDocument is the JSON shape accepted by hash/canonicalize: an
// already-built Entity record.
type entityDocument = entity.Entity

func runHash(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("hash", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: cep hash <file.json>")
		return 2
	}

	data, err := os.ReadFile(cmd.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", cmd.Arg(0), err)
		return 1
	}

	var doc entityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(stderr, "parse %s: %v\n", cmd.Arg(0), err)
		return 1
	}

	fmt.Fprintln(stdout, doc.Hash())
	return 0
}

func runCanonicalize(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("canonicalize", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: cep canonicalize <file.json>")
		return 2
	}

	data, err := os.ReadFile(cmd.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", cmd.Arg(0), err)
		return 1
	}

	var doc entityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(stderr, "parse %s: %v\n", cmd.Arg(0), err)
		return 1
	}

	fmt.Fprintln(stdout, canonical.ToCanonicalString(doc))
	return 0
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: cep validate <file.json> <schema.json>")
		return 2
	}

	docData, err := os.ReadFile(cmd.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", cmd.Arg(0), err)
		return 1
	}
	schemaData, err := os.ReadFile(cmd.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", cmd.Arg(1), err)
		return 1
	}

	schema, err := compileSchemaForCLI(cmd.Arg(1), schemaData)
	if err != nil {
		fmt.Fprintf(stderr, "compile schema %s: %v\n", cmd.Arg(1), err)
		return 1
	}

	var doc any
	if err := json.Unmarshal(docData, &doc); err != nil {
		fmt.Fprintf(stderr, "parse %s: %v\n", cmd.Arg(0), err)
		return 1
	}

	if err := schema.Validate(doc); err != nil {
		fmt.Fprintf(stderr, "validation failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "valid")
	return 0
}

func runResolve(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("resolve", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	var jurisdiction string
	cmd.StringVar(&jurisdiction, "jurisdiction", "", "jurisdiction override (defaults to country code)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() < 2 || cmd.NArg() > 4 {
		fmt.Fprintln(stderr, "usage: cep resolve [-jurisdiction j] <name> <country> [address] [date]")
		return 2
	}

	name := cmd.Arg(0)
	country := cmd.Arg(1)
	var addrPtr, datePtr *string
	if cmd.NArg() >= 3 {
		addr := cmd.Arg(2)
		addrPtr = &addr
	}
	if cmd.NArg() >= 4 {
		date := cmd.Arg(3)
		datePtr = &date
	}

	j := jurisdiction
	if j == "" {
		j = country
	}
	reg := localize.NewRegistry("")
	cfg, err := reg.Resolve(j)
	if err != nil {
		cfg = localize.Empty(j)
	}
	localizedName := cfg.ApplyToName(name, localize.Activation{Jurisdiction: j})

	result := snfei.Generate(snfei.Request{
		LegalName:        localizedName,
		CountryCode:      country,
		Address:          addrPtr,
		RegistrationDate: datePtr,
	})

	out := map[string]any{
		"snfei":      result.SNFEI,
		"tier":       result.Tier,
		"confidence": result.Confidence,
		"fieldsUsed": result.FieldsUsed,
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(encoded))
	return 0
}

func compileSchemaForCLI(path string, schemaData []byte) (*jsonschema.Schema, error) {
	return cepvalidate.CompileSchema("file://"+path, schemaData)
}
