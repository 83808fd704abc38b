// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

var canonicalChunk = []string{
	"01/03/2024",
	"09:00 - 09:30",
	"Maria Silva - 123456",
	"(11)91234-5678",
	"Avaliação inicial",
	"Primeira consulta",
	"Alessandra",
	"01/02/2024 10:00",
	"Alterado em 02/02/2024",
	"10:15",
}

func newDefault() *Classifier {
	return New(types.ClassifyConfig{})
}

func TestRecord_CanonicalChunk(t *testing.T) {
	rec, dropped := newDefault().Record(canonicalChunk)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, types.Record{
		Date:             "01/03/2024",
		TimeRange:        "09:00 - 09:30",
		Patient:          "Maria Silva - 123456",
		Phone:            "(11)91234-5678",
		AttendanceType:   "Avaliação inicial",
		Observation:      "Primeira consulta",
		Professional:     "Alessandra",
		RegistrationDate: "01/02/2024 10:00",
		AlterationNote:   "Alterado em 02/02/2024",
		AlterationTime:   "10:15",
	}, rec)
}

func TestRecord_FirstUnfilledFieldWins(t *testing.T) {
	tests := []struct {
		name        string
		chunk       []string
		want        map[types.Field]string
		wantDropped int
	}{
		{
			name:  "second date falls through to observation",
			chunk: []string{"01/03/2024", "02/03/2024"},
			want: map[types.Field]string{
				types.FieldDate:        "01/03/2024",
				types.FieldObservation: "02/03/2024",
			},
		},
		{
			name:  "bare time before observation is absorbed by observation",
			chunk: []string{"10:15", "Primeira consulta"},
			want: map[types.Field]string{
				types.FieldObservation:    "10:15",
				types.FieldAlterationTime: "",
			},
			wantDropped: 1,
		},
		{
			name:  "professional never taken as observation",
			chunk: []string{"Alessandra", "Alessandra"},
			want: map[types.Field]string{
				types.FieldProfessional: "Alessandra",
				types.FieldObservation:  "",
			},
			wantDropped: 1,
		},
		{
			name:  "line over 100 characters matches nothing",
			chunk: []string{strings.Repeat("x", 101)},
			want: map[types.Field]string{
				types.FieldObservation: "",
			},
			wantDropped: 1,
		},
		{
			name:  "100 multibyte characters still an observation",
			chunk: []string{strings.Repeat("ç", 100)},
			want: map[types.Field]string{
				types.FieldObservation: strings.Repeat("ç", 100),
			},
		},
		{
			name:  "attendance type matched by prefix",
			chunk: []string{"Retorno - manutenção", "Compromisso pessoal"},
			want: map[types.Field]string{
				types.FieldAttendanceType: "Retorno - manutenção",
				types.FieldObservation:    "Compromisso pessoal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, dropped := newDefault().Record(tt.chunk)
			assert.Equal(t, tt.wantDropped, dropped)
			for f, v := range tt.want {
				assert.Equal(t, v, rec.Get(f), "field %s", f)
			}
		})
	}
}

func TestClassify_Chunking(t *testing.T) {
	lines := append(append([]string{}, canonicalChunk...), canonicalChunk...)
	lines = append(lines, "05/03/2024", "14:00 - 14:45", "João Souza - 654321")

	res := newDefault().ClassifyDocument("agenda.pdf", lines)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 0, res.Dropped)

	for i, rec := range res.Records {
		assert.Equal(t, "agenda.pdf", rec.Source)
		assert.Equal(t, i, rec.Chunk)
	}

	last := res.Records[2]
	assert.Equal(t, "05/03/2024", last.Date)
	assert.Equal(t, "14:00 - 14:45", last.TimeRange)
	assert.Equal(t, "João Souza - 654321", last.Patient)
	assert.Empty(t, last.Phone)
	assert.Empty(t, last.Professional)
}

func TestClassify_Empty(t *testing.T) {
	assert.Empty(t, newDefault().Classify(nil))
}

func TestNew_Settings(t *testing.T) {
	c := New(types.ClassifyConfig{ChunkSize: 2, Professional: "Dr. Bruno"})
	assert.Equal(t, 2, c.ChunkSize())

	recs := c.Classify([]string{"Dr. Bruno", "Alessandra", "Drx Bruno"})
	require.Len(t, recs, 2)
	assert.Equal(t, "Dr. Bruno", recs[0].Professional)
	assert.Equal(t, "Alessandra", recs[0].Observation)
	// The dot in the name is literal.
	assert.Equal(t, "Drx Bruno", recs[1].Observation)
	assert.Empty(t, recs[1].Professional)

	assert.Equal(t, types.DefaultChunkSize, New(types.ClassifyConfig{ChunkSize: -1}).ChunkSize())
}

func TestMatch(t *testing.T) {
	c := newDefault()
	tests := []struct {
		line string
		want types.Field
		ok   bool
	}{
		{"01/03/2024", types.FieldDate, true},
		{"09:00 - 09:30", types.FieldTimeRange, true},
		{"(11)1234-5678", types.FieldPhone, true},
		{"Consulta de rotina", types.FieldAttendanceType, true},
		{"Alessandra", types.FieldProfessional, true},
		{"Limpeza", types.FieldObservation, true},
		{strings.Repeat("y", 150), 0, false},
	}
	for _, tt := range tests {
		got, ok := c.Match(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.line)
		}
	}
}
