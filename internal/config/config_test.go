package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmms-lang/nmms/internal/config"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

func writeManifest(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "base.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCompilePropositionalManifest(t *testing.T) {
	path := writeManifest(t, `
mode: propositional
assertions:
  - label: fact1
    atom: A
  - label: fact2
    antecedent: [A]
    consequent: [B]
`)
	manifest, err := config.Load(path)
	require.NoError(t, err)

	b, store, err := manifest.Compile()
	require.NoError(t, err)
	require.Equal(t, []string{"fact1", "fact2"}, store.Labels())

	atom, err := sentence.Parse("A", sentence.Propositional)
	require.NoError(t, err)
	other, err := sentence.Parse("B", sentence.Propositional)
	require.NoError(t, err)
	require.True(t, b.IsAxiom(
		sentence.FromSlice([]sentence.Sentence{atom}),
		sentence.FromSlice([]sentence.Sentence{other}),
	))
}

func TestCompileRQManifestWithCommitments(t *testing.T) {
	path := writeManifest(t, `
mode: rq
assertions:
  - label: r1
    atom: "hasChild(a,b)"
commitments:
  - label: c1
    kind: concept
    role: hasChild
    individual: a
    concept: Doctor
`)
	manifest, err := config.Load(path)
	require.NoError(t, err)

	b, _, err := manifest.Compile()
	require.NoError(t, err)

	role, err := sentence.Parse("hasChild(a,b)", sentence.RQ)
	require.NoError(t, err)
	concept, err := sentence.Parse("Doctor(b)", sentence.RQ)
	require.NoError(t, err)
	require.True(t, b.IsAxiom(
		sentence.FromSlice([]sentence.Sentence{role}),
		sentence.FromSlice([]sentence.Sentence{concept}),
	))
}

func TestCompileRejectsUnknownMode(t *testing.T) {
	path := writeManifest(t, "mode: quantum\n")
	manifest, err := config.Load(path)
	require.NoError(t, err)
	_, _, err = manifest.Compile()
	require.Error(t, err)
}

func TestCompileRejectsUnknownCommitmentKind(t *testing.T) {
	path := writeManifest(t, `
mode: rq
commitments:
  - label: c1
    kind: mystery
    role: hasChild
    individual: a
    concept: Doctor
`)
	manifest, err := config.Load(path)
	require.NoError(t, err)
	_, _, err = manifest.Compile()
	require.Error(t, err)
}
