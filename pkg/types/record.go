// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Field identifies one of the ten positions of an appointment record in a
// ControleODONTO schedule report. The declaration order is the order in which
// the classifier tries the field patterns.
type Field int

const (
	FieldDate Field = iota
	FieldTimeRange
	FieldPatient
	FieldPhone
	FieldAttendanceType
	FieldObservation
	FieldProfessional
	FieldRegistrationDate
	FieldAlterationNote
	FieldAlterationTime

	// NumFields is the number of fields in a Record.
	NumFields = int(FieldAlterationTime) + 1
)

// columnNames are the table column names. They match the column names of the
// report exports already in use, so CSV files stay interchangeable.
var columnNames = [NumFields]string{
	"data",
	"hora_inicio_fim",
	"paciente",
	"telefone",
	"tipo_atendimento",
	"observações",
	"profissional",
	"data_cadastro",
	"alteracao",
	"hora_alteracao",
}

// Fields returns every field in declaration order.
func Fields() []Field {
	fs := make([]Field, NumFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// Column returns the table column name of the field.
func (f Field) Column() string {
	if f < 0 || int(f) >= NumFields {
		return ""
	}
	return columnNames[f]
}

func (f Field) String() string { return f.Column() }

// FieldByColumn looks up a field by its column name.
func FieldByColumn(name string) (Field, bool) {
	for i, c := range columnNames {
		if c == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Record is one appointment as laid out in the report: ten string fields,
// each empty until a line is classified into it.
type Record struct {
	Date             string `json:"data" yaml:"data"`
	TimeRange        string `json:"hora_inicio_fim" yaml:"hora_inicio_fim"`
	Patient          string `json:"paciente" yaml:"paciente"`
	Phone            string `json:"telefone" yaml:"telefone"`
	AttendanceType   string `json:"tipo_atendimento" yaml:"tipo_atendimento"`
	Observation      string `json:"observações" yaml:"observações"`
	Professional     string `json:"profissional" yaml:"profissional"`
	RegistrationDate string `json:"data_cadastro" yaml:"data_cadastro"`
	AlterationNote   string `json:"alteracao" yaml:"alteracao"`
	AlterationTime   string `json:"hora_alteracao" yaml:"hora_alteracao"`

	// Source is the PDF path the record was read from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Chunk is the zero-based index of the line chunk within Source.
	Chunk int `json:"chunk" yaml:"chunk"`
}

// Ptr returns a pointer to the value of field f, or nil for an unknown field.
func (r *Record) Ptr(f Field) *string {
	switch f {
	case FieldDate:
		return &r.Date
	case FieldTimeRange:
		return &r.TimeRange
	case FieldPatient:
		return &r.Patient
	case FieldPhone:
		return &r.Phone
	case FieldAttendanceType:
		return &r.AttendanceType
	case FieldObservation:
		return &r.Observation
	case FieldProfessional:
		return &r.Professional
	case FieldRegistrationDate:
		return &r.RegistrationDate
	case FieldAlterationNote:
		return &r.AlterationNote
	case FieldAlterationTime:
		return &r.AlterationTime
	}
	return nil
}

// Get returns the value of field f.
func (r Record) Get(f Field) string {
	if p := r.Ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to field f. Unknown fields are ignored.
func (r *Record) Set(f Field, v string) {
	if p := r.Ptr(f); p != nil {
		*p = v
	}
}

// Values returns the ten field values in declaration order.
func (r Record) Values() []string {
	vs := make([]string, NumFields)
	for i := range vs {
		vs[i] = r.Get(Field(i))
	}
	return vs
}
