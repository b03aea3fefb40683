package iotesting

import (
	"testing"

	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/stretchr/testify/require"
)

// LatestBBLYear is the most recent BBL year in the fixtures.
const LatestBBLYear = 2025

type fixture struct {
	authority string
	year      int
	columns   []string
	rows      [][]string
}

var fixtures = []fixture{
	{
		authority: "avilist",
		year:      2024,
		columns: []string{
			"scientific_name", "avilist_common_name", "avilist_order",
			"avilist_family", "genus",
		},
		rows: [][]string{
			{"Struthio camelus", "Common Ostrich", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Aechmophorus occidentalis", "Western Grebe", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Turdus migratorius", "American Robin", "Passeriformes", "Turdidae", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "Passeriformes", "Corvidae", "Cyanocitta"},
		},
	},
	{
		authority: "avilist",
		year:      2025,
		columns: []string{
			"scientific_name", "avilist_common_name", "avilist_order",
			"avilist_family", "genus",
		},
		rows: [][]string{
			{"Struthio camelus", "Common Ostrich", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Struthio molybdophanes", "Somali Ostrich", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Dromaius novaehollandiae", "Emu", "Casuariiformes", "Dromaiidae", "Dromaius"},
			{"Aechmophorus occidentalis", "Western Grebe", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Turdus migratorius", "American Robin", "Passeriformes", "Turdidae", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "Passeriformes", "Corvidae", "Cyanocitta"},
		},
	},
	{
		authority: "ebird",
		year:      2024,
		columns: []string{
			"scientific_name", "ebird_common_name", "ebird_ebird_code",
			"ebird_order", "ebird_family", "genus",
		},
		rows: [][]string{
			{"Struthio camelus", "Common Ostrich", "ostric2", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Struthio molybdophanes", "Somali Ostrich", "ostric3", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Dromaius novaehollandiae", "Emu", "emu1", "Casuariiformes", "Dromaiidae", "Dromaius"},
			{"Aechmophorus occidentalis", "Western Grebe", "wesgre", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "clagre", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "rengre", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "horgre", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Turdus migratorius", "American Robin", "amerob", "Passeriformes", "Turdidae", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "blujay", "Passeriformes", "Corvidae", "Cyanocitta"},
		},
	},
	{
		authority: "ebird",
		year:      2025,
		columns: []string{
			"scientific_name", "ebird_common_name", "ebird_ebird_code",
			"ebird_order", "ebird_family", "genus",
		},
		rows: [][]string{
			{"Struthio camelus", "Common Ostrich", "ostric2", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Struthio molybdophanes", "Somali Ostrich", "ostric3", "Struthioniformes", "Struthionidae", "Struthio"},
			{"Dromaius novaehollandiae", "Emu", "emu1", "Casuariiformes", "Dromaiidae", "Dromaius"},
			{"Aechmophorus occidentalis", "Western Grebe", "wesgre", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "clagre", "Podicipediformes", "Podicipedidae", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "rengre", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "horgre", "Podicipediformes", "Podicipedidae", "Podiceps"},
			{"Turdus migratorius", "American Robin", "amerob", "Passeriformes", "Turdidae", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "blujay", "Passeriformes", "Corvidae", "Cyanocitta"},
			{"Pica hudsonia", "Black-billed Magpie", "bkbmag1", "Passeriformes", "Corvidae", "Pica"},
		},
	},
	{
		authority: "bbl",
		year:      LatestBBLYear,
		columns: []string{
			"scientific_name", "bbl_common_name", "bbl_alpha",
			"bbl_french_name", "genus",
		},
		rows: [][]string{
			{"Aechmophorus occidentalis", "Western Grebe", "WEGR", "Grèbe élégant", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "CLGR", "Grèbe à face blanche", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "RNGR", "Grèbe jougris", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "HOGR", "Grèbe esclavon", "Podiceps"},
			{"Turdus migratorius", "American Robin", "AMRO", "Merle d'Amérique", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "BLJA", "Geai bleu", "Cyanocitta"},
		},
	},
	{
		authority: "ibp",
		year:      2024,
		columns: []string{
			"scientific_name", "ibp_common_name", "ibp_alpha", "ibp_alpha6",
			"genus",
		},
		rows: [][]string{
			{"Struthio camelus", "Common Ostrich", "COOS", "STRCAM", "Struthio"},
			{"Aechmophorus occidentalis", "Western Grebe", "WEGR", "AECOCC", "Aechmophorus"},
			{"Aechmophorus clarkii", "Clark's Grebe", "CLGR", "AECCLA", "Aechmophorus"},
			{"Podiceps grisegena", "Red-necked Grebe", "RNGR", "PODGRI", "Podiceps"},
			{"Podiceps auritus", "Horned Grebe", "HOGR", "PODAUR", "Podiceps"},
			{"Turdus migratorius", "American Robin", "AMRO", "TURMIG", "Turdus"},
			{"Cyanocitta cristata", "Blue Jay", "BLJA", "CYACRI", "Cyanocitta"},
			{"Pica hudsonia", "Black-billed Magpie", "BBMA", "PICHUD", "Pica"},
		},
	},
}

// Tables returns small AviList, eBird, BBL and IBP tables.
// BBL has the fewest rows, so its schemes are tested first during
// detection.
func Tables(t *testing.T) []*taxonomy.Table {
	t.Helper()
	res := make([]*taxonomy.Table, 0, len(fixtures))
	for _, v := range fixtures {
		tbl, err := taxonomy.NewTable(v.authority, v.year, v.columns, v.rows)
		require.NoError(t, err)
		res = append(res, tbl)
	}
	return res
}

// Source returns an in-memory source with fixture tables.
func Source(t *testing.T) taxonomy.Source {
	t.Helper()
	res, err := taxonomy.NewMemSource(Tables(t)...)
	require.NoError(t, err)
	return res
}

// Registry returns a registry backed by fixture tables.
func Registry(t *testing.T) *taxonomy.Registry {
	t.Helper()
	src := Source(t)
	res, err := taxonomy.NewRegistryFromSource(t.Context(), src, nil)
	require.NoError(t, err)
	return res
}
