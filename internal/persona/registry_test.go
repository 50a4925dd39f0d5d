package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

func TestRegistryContainsClosedSet(t *testing.T) {
	r := NewRegistry()

	ids := []types.PersonaID{
		types.PersonaArchitect, types.PersonaFrontend, types.PersonaBackend,
		types.PersonaAnalyzer, types.PersonaSecurity, types.PersonaMentor,
		types.PersonaRefactorer, types.PersonaPerformance, types.PersonaQA,
	}

	assert.Len(t, r.List(), 9)
	for _, id := range ids {
		p, err := r.Get(id)
		require.NoError(t, err, "persona %s", id)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.SystemPrompt)
	}
}

func TestGetUnknownFailsExplicitly(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("wizard")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSuggestsClosestMatch(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("frontented")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "frontend"`)
}

func TestListPreservesCatalogOrder(t *testing.T) {
	r := NewRegistry()

	list := r.List()
	assert.Equal(t, types.PersonaArchitect, list[0].ID)
	assert.Equal(t, types.PersonaQA, list[len(list)-1].ID)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")

	catalog := `personas:
  - id: architect
    name: Architect
    description: test profile
    systemPrompt: You are an architect.
    expertise: [design]
  - id: qa
    name: QA
    description: test profile
    systemPrompt: You are a tester.
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0644))

	profiles, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	r := NewRegistryWithProfiles(profiles)
	assert.Len(t, r.List(), 2)

	_, err = r.Get(types.PersonaFrontend)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCatalogRejectsMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personas:\n  - name: Nameless\n    systemPrompt: x\n"), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
