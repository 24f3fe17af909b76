package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNotFound(t *testing.T) {
	_, ok := Resolve([]string{"Nom", "Date de lancement"}, "âge")
	assert.False(t, ok)

	_, ok = Resolve(nil, "âge")
	assert.False(t, ok)
}

func TestResolveFirstMatchCaseInsensitive(t *testing.T) {
	headers := []string{"Nom", "Profil - Quel est votre ÂGE ?", "Âge du conjoint"}
	got, ok := Resolve(headers, "âge")
	assert.True(t, ok)
	assert.Equal(t, "Profil - Quel est votre ÂGE ?", got)
}

func TestResolveDecomposedAccents(t *testing.T) {
	headers := []string{"Votre a\u0302ge"}
	got, ok := Resolve(headers, "âge")
	assert.True(t, ok)
	assert.Equal(t, "Votre a\u0302ge", got, "the header is returned unchanged")
}

func TestResolveIsPureAndIdempotent(t *testing.T) {
	headers := []string{"B statut actuel", "A statut actuel"}
	snapshot := append([]string(nil), headers...)
	first, _ := Resolve(headers, "STATUT ACTUEL")
	second, _ := Resolve(headers, "statut actuel")
	assert.Equal(t, first, second)
	assert.Equal(t, "B statut actuel", first)
	assert.Equal(t, snapshot, headers)
}

func TestResolveEmptySubstring(t *testing.T) {
	_, ok := Resolve([]string{"anything"}, "")
	assert.False(t, ok)
}

func TestResolveAll(t *testing.T) {
	headers := []string{
		"Date de lancement",
		"Date de soumission",
		"Profil - Quel est votre âge ?",
		"Profil - Vous vous identifiez comme",
		"Carrière - Votre académie",
		"Carrière - Votre statut actuel",
	}
	f := ResolveAll(headers, DefaultMarkers())
	assert.Equal(t, Fields{
		Age:          "Profil - Quel est votre âge ?",
		Start:        "Date de lancement",
		End:          "Date de soumission",
		Gender:       "Profil - Vous vous identifiez comme",
		Organization: "Carrière - Votre académie",
		Status:       "Carrière - Votre statut actuel",
	}, f)

	f = ResolveAll([]string{"Nom"}, DefaultMarkers())
	assert.Equal(t, Fields{}, f)
}

func TestMarkersWithDefaults(t *testing.T) {
	m := Markers{Age: "age"}.WithDefaults()
	assert.Equal(t, "age", m.Age)
	assert.Equal(t, DefaultMarkers().Status, m.Status)
}
