package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civic-interconnect/cep-core/pkg/entity"
	"github.com/civic-interconnect/cep-core/pkg/localize"
)

func writeEntityFixture(t *testing.T, dir string) string {
	t.Helper()
	b := entity.NewBuilder(localize.NewRegistry(""))
	e, _, err := b.Build(entity.Input{
		LegalName:            "Springfield Unified School District",
		CountryCode:          "US",
		Jurisdiction:         "us",
		EntityTypeRaw:        "school_district",
		AttestorID:           "attestor-1",
		AttestationTimestamp: "2024-01-01T00:00:00.000000Z",
	})
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	path := filepath.Join(dir, "entity.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunHash(t *testing.T) {
	path := writeEntityFixture(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Run([]string{"cep", "hash", path}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Len(t, stdout.String(), 65) // 64 hex chars + newline
}

func TestRunCanonicalize(t *testing.T) {
	path := writeEntityFixture(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Run([]string{"cep", "canonicalize", path}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), `"legalName"`)
}

func TestRunResolve(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"cep", "resolve", "Societe Generale S.A.", "FR"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "snfei")
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"cep", "version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.NotEmpty(t, stdout.String())
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"cep", "bogus"}, &stdout, &stderr)
	require.Equal(t, 2, code)
}
