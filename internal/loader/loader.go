// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader turns catalog rows into consultations and appends them,
// together with the consultation type catalog, to the store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/odonto-etl/internal/catalog"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

const (
	// dateLayout and timestampLayout parse values after "/" has been
	// replaced by "-".
	dateLayout      = "02-01-2006"
	timestampLayout = "02-01-2006 15:04"
	// idTimeLayout is the textual form of the start time hashed into the
	// consultation ID. It must stay fixed for IDs to match earlier imports.
	idTimeLayout = "2006-01-02 15:04:05"
	// rangeSep separates start and end in the time-range field.
	rangeSep = " - "
)

// Appender persists one run's catalog and consultations.
type Appender interface {
	Append(ctx context.Context, cts []types.ConsultationType, cs []types.Consultation) error
}

// ParseTimestamp combines a dd/mm/yyyy date and an hh:mm clock into a time
// in UTC.
func ParseTimestamp(date, clock string) (time.Time, error) {
	s := strings.ReplaceAll(date+" "+clock, "/", "-")
	return time.Parse(timestampLayout, s)
}

// SplitRange splits "09:00 - 09:30" into its start and end clocks.
func SplitRange(r string) (start, end string, err error) {
	parts := strings.Split(r, rangeSep)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("time range %q has no %q separator", r, rangeSep)
	}
	return parts[0], parts[1], nil
}

// ConsultationID derives the consultation identifier from the patient name
// and the start time.
func ConsultationID(patient string, start time.Time) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(patient+start.Format(idTimeLayout)))
}

// Consultation builds the consultation for one catalog row.
func Consultation(row catalog.Annotated) (types.Consultation, error) {
	perr := func(f types.Field, err error) error {
		return &types.ParseError{
			Source: row.Source,
			Chunk:  row.Chunk,
			Field:  f,
			Value:  row.Get(f),
			Err:    err,
		}
	}

	if row.Date == "" {
		return types.Consultation{}, perr(types.FieldDate, errors.New("empty date"))
	}
	if _, err := time.Parse(dateLayout, strings.ReplaceAll(row.Date, "/", "-")); err != nil {
		return types.Consultation{}, perr(types.FieldDate, err)
	}
	startClock, endClock, err := SplitRange(row.TimeRange)
	if err != nil {
		return types.Consultation{}, perr(types.FieldTimeRange, err)
	}
	start, err := ParseTimestamp(row.Date, startClock)
	if err != nil {
		return types.Consultation{}, perr(types.FieldTimeRange, err)
	}
	end, err := ParseTimestamp(row.Date, endClock)
	if err != nil {
		return types.Consultation{}, perr(types.FieldTimeRange, err)
	}

	return types.Consultation{
		ID:                 ConsultationID(row.Patient, start),
		PatientName:        row.Patient,
		StartDate:          start,
		EndDate:            end,
		Concluded:          true,
		ConsultationTypeID: row.TypeID,
	}, nil
}

// Build converts every row. The first row that cannot be parsed aborts the
// whole build with a *types.ParseError.
func Build(rows []catalog.Annotated) ([]types.Consultation, error) {
	out := make([]types.Consultation, 0, len(rows))
	for _, row := range rows {
		c, err := Consultation(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Load builds the consultations for res and appends them with the catalog in
// one call. Nothing is written if any row fails to parse.
func Load(ctx context.Context, app Appender, res catalog.Result) ([]types.Consultation, error) {
	cs, err := Build(res.Rows)
	if err != nil {
		return nil, err
	}
	if err := app.Append(ctx, res.Types, cs); err != nil {
		return nil, err
	}
	return cs, nil
}
