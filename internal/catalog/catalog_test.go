// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/odonto-etl/internal/table"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

func TestTypeID(t *testing.T) {
	a := TypeID("Primeira consulta")
	b := TypeID("Primeira consulta")
	c := TypeID("Limpeza")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, uuid.Version(5), a.Version())
	// uuid5(NAMESPACE_DNS, "python.org"), a widely published reference value.
	assert.Equal(t, "886313e1-3b8a-5372-9b90-0c9aee199e5d", TypeID("python.org").String())
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"01/02/2024 10:00", true},
		{"10:15", true},
		{"(11)91234-5678", true},
		{"ligar (11)91234-5678 antes", true},
		{"Alterado em 02/02/2024", true},
		{"Horário Alterado pelo paciente", true},
		{"(11)1234-5678", false},
		{"10:15 retorno", false},
		{"Primeira consulta", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNoise(tt.value), tt.value)
	}
}

func TestDerive(t *testing.T) {
	tbl := table.Build([]types.Record{
		{Patient: "Maria Silva - 123456", Observation: "Primeira consulta"},
		{Patient: "João Souza - 654321", Observation: "Alterado em 02/02/2024"},
		{Patient: "Ana Lima - 111111", Observation: "Limpeza"},
		{Patient: "Rui Costa - 222222", Observation: "Primeira consulta"},
		{Patient: "Eva Reis - 333333", Observation: "10:15"},
	})

	res := Derive(tbl)

	assert.Equal(t, 2, res.Filtered)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "Maria Silva - 123456", res.Rows[0].Patient)
	assert.Equal(t, "Ana Lima - 111111", res.Rows[1].Patient)
	assert.Equal(t, "Rui Costa - 222222", res.Rows[2].Patient)
	assert.Equal(t, res.Rows[0].TypeID, res.Rows[2].TypeID)

	assert.Equal(t, []types.ConsultationType{
		{ID: TypeID("Primeira consulta"), Label: "Primeira consulta"},
		{ID: TypeID("Limpeza"), Label: "Limpeza"},
	}, res.Types)

	for _, row := range res.Rows {
		assert.Contains(t, res.Types, types.ConsultationType{ID: row.TypeID, Label: row.Label()})
	}
}

func TestDerive_Empty(t *testing.T) {
	res := Derive(table.Build(nil))
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Types)
	assert.Zero(t, res.Filtered)
}
