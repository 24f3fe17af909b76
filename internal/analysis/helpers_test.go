package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// na marks a missing answer in test tables.
const na = "\x00"

type textCol struct {
	name string
	vals []string
}

func textDataset(t *testing.T, cols ...textCol) *dataset.Dataset {
	t.Helper()
	require.NotEmpty(t, cols)
	ds := dataset.New(len(cols[0].vals))
	for _, c := range cols {
		cells := make([]dataset.Cell, len(c.vals))
		for i, v := range c.vals {
			if v != na {
				cells[i] = dataset.TextCell(v)
			}
		}
		require.NoError(t, ds.SetColumn(&dataset.Column{Name: c.name, Kind: dataset.KindText, Cells: cells}))
	}
	return ds
}

func surveyDataset(t *testing.T) *dataset.Dataset {
	return textDataset(t,
		textCol{"Informations - Quel est votre âge ?", []string{"25", "35", "abc", na}},
		textCol{"Informations - Date de lancement", []string{"2024-01-01 10:00:00", "2024-01-01 11:00:00", "2024-01-02 09:00:00", na}},
		textCol{"Informations - Date de soumission", []string{"2024-01-01 10:30:00", "2024-01-01 11:30:00", "not a date", na}},
		textCol{"Profil - Vous vous identifiez comme", []string{"Femme", "Homme", "Femme", na}},
		textCol{"Profil - Votre académie", []string{"Lyon", "Paris", "Lyon", "Paris"}},
	)
}
