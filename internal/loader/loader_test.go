// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/odonto-etl/internal/catalog"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

// fakeAppender records what was appended, or fails with err.
type fakeAppender struct {
	calls int
	types []types.ConsultationType
	cs    []types.Consultation
	err   error
}

func (f *fakeAppender) Append(_ context.Context, cts []types.ConsultationType, cs []types.Consultation) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.types = append(f.types, cts...)
	f.cs = append(f.cs, cs...)
	return nil
}

func row(date, timeRange, patient, obs string) catalog.Annotated {
	return catalog.Annotated{
		Record: types.Record{Date: date, TimeRange: timeRange, Patient: patient, Observation: obs, Source: "agenda.pdf", Chunk: 4},
		TypeID: catalog.TypeID(obs),
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("01/03/2024", "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("31/02/2024", "09:00")
	assert.Error(t, err)

	_, err = ParseTimestamp("", "")
	assert.Error(t, err)
}

func TestSplitRange(t *testing.T) {
	start, end, err := SplitRange("09:00 - 09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "09:30", end)

	_, _, err = SplitRange("09:00-09:30")
	assert.Error(t, err)
}

func TestConsultation(t *testing.T) {
	r := row("01/03/2024", "09:00 - 09:30", "Maria Silva - 123456", "Primeira consulta")

	c, err := Consultation(r)
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva - 123456", c.PatientName)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), c.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), c.EndDate)
	assert.True(t, c.Concluded)
	assert.Equal(t, catalog.TypeID("Primeira consulta"), c.ConsultationTypeID)
	assert.Equal(t, ConsultationID("Maria Silva - 123456", c.StartDate), c.ID)
	assert.NotEqual(t, c.ConsultationTypeID, c.ID)
}

func TestConsultationID_Deterministic(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, ConsultationID("Maria", start), ConsultationID("Maria", start))
	assert.NotEqual(t, ConsultationID("Maria", start), ConsultationID("Maria", start.Add(time.Minute)))
	assert.NotEqual(t, ConsultationID("Maria", start), ConsultationID("Marta", start))
	assert.Equal(t, catalog.TypeID("Maria2024-03-01 09:00:00"), ConsultationID("Maria", start))
}

func TestConsultation_ParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		row       catalog.Annotated
		wantField types.Field
	}{
		{"empty date", row("", "09:00 - 09:30", "Maria", "x"), types.FieldDate},
		{"empty range", row("01/03/2024", "", "Maria", "x"), types.FieldTimeRange},
		{"bad clock", row("01/03/2024", "09:00 - 25:99", "Maria", "x"), types.FieldTimeRange},
		{"bad date", row("2024-03-01", "09:00 - 09:30", "Maria", "x"), types.FieldDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Consultation(tt.row)
			require.Error(t, err)

			var pe *types.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantField, pe.Field)
			assert.Equal(t, "agenda.pdf", pe.Source)
			assert.Equal(t, 4, pe.Chunk)
			assert.Contains(t, err.Error(), "agenda.pdf chunk 4")
		})
	}
}

func TestLoad(t *testing.T) {
	res := catalog.Result{
		Rows: []catalog.Annotated{
			row("01/03/2024", "09:00 - 09:30", "Maria Silva - 123456", "Primeira consulta"),
			row("01/03/2024", "10:00 - 10:45", "João Souza - 654321", "Primeira consulta"),
		},
		Types: []types.ConsultationType{{ID: catalog.TypeID("Primeira consulta"), Label: "Primeira consulta"}},
	}

	app := &fakeAppender{}
	cs, err := Load(context.Background(), app, res)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, 1, app.calls)
	assert.Equal(t, res.Types, app.types)
	assert.Equal(t, cs, app.cs)

	again, err := Load(context.Background(), app, res)
	require.NoError(t, err)
	assert.Equal(t, cs[0].ID, again[0].ID, "re-import yields identical identifiers")
	assert.Len(t, app.cs, 4, "consultations are appended, not deduplicated")
}

func TestLoad_ParseErrorWritesNothing(t *testing.T) {
	res := catalog.Result{Rows: []catalog.Annotated{
		row("01/03/2024", "09:00 - 09:30", "Maria", "x"),
		row("", "", "Broken", "x"),
	}}

	app := &fakeAppender{}
	_, err := Load(context.Background(), app, res)

	var pe *types.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Zero(t, app.calls)
}

func TestLoad_StorageError(t *testing.T) {
	boom := &types.StorageError{Op: "append", Err: errors.New("connection refused")}
	app := &fakeAppender{err: boom}

	_, err := Load(context.Background(), app, catalog.Result{})
	assert.ErrorIs(t, err, boom)
}
