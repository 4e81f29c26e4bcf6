// Package roster parses student rosters uploaded as CSV before they are
// handed to the bulk importer.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBytes caps the size of an uploaded roster.
const MaxBytes = 1 << 20

var (
	ErrEmpty    = errors.New("roster: no rows")
	ErrTooLarge = errors.New("roster: file too large")
)

// Row is one student line. Line is the 1-based line in the source file.
type Row struct {
	Line      int    `json:"line"`
	Name      string `json:"name" validate:"required,max=200"`
	Recipient string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// RowError reports a row that failed validation.
type RowError struct {
	Line    int    `json:"line"`
	Row     Row    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
}

// Result holds the valid rows and the rejected ones, both in file order.
type Result struct {
	Rows   []Row
	Errors []RowError
}

var headerAliases = map[string]string{
	"nombre":             "name",
	"name":               "name",
	"alumno":             "name",
	"email":              "email",
	"e-mail":             "email",
	"correo":             "email",
	"correo electronico": "email",
	"correo electrónico": "email",
	"recipient":          "email",
	"telefono":           "phone",
	"teléfono":           "phone",
	"phone":              "phone",
	"movil":              "phone",
	"móvil":              "phone",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse reads a roster. Columns are taken from a header row when one is
// present (Spanish or English names), otherwise they are positional:
// name, email, phone. Rows with both name and email blank are skipped.
// Emails are trimmed and lowercased.
func Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("roster: read: %w", err)
	}
	if len(data) > MaxBytes {
		return Result{}, ErrTooLarge
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectComma(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cols := map[string]int{"name": 0, "email": 1, "phone": 2}
	first := true

	var res Result
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("roster: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if hdr, ok := parseHeader(rec); ok {
				cols = hdr
				continue
			}
		}

		row := Row{
			Line:      line,
			Name:      field(rec, cols, "name"),
			Recipient: strings.ToLower(field(rec, cols, "email")),
			Phone:     field(rec, cols, "phone"),
		}
		if row.Name == "" && row.Recipient == "" {
			continue
		}

		if rerr, bad := validateRow(row); bad {
			res.Errors = append(res.Errors, rerr)
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	if len(res.Rows) == 0 && len(res.Errors) == 0 {
		return Result{}, ErrEmpty
	}
	return res, nil
}

// FindDuplicates maps each recipient that appears more than once to the
// lines it appears on.
func FindDuplicates(rows []Row) map[string][]int {
	seen := make(map[string][]int, len(rows))
	for _, r := range rows {
		seen[r.Recipient] = append(seen[r.Recipient], r.Line)
	}
	dups := make(map[string][]int)
	for k, lines := range seen {
		if len(lines) > 1 {
			dups[k] = lines
		}
	}
	return dups
}

func validateRow(row Row) (RowError, bool) {
	err := validate.Struct(row)
	if err == nil {
		return RowError{}, false
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return RowError{Line: row.Line, Row: row, Field: fe.Field(), Message: message(fe)}, true
	}
	return RowError{Line: row.Line, Row: row, Field: "row", Message: err.Error()}, true
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "max":
		return "is too long"
	}
	return "is invalid"
}

func parseHeader(rec []string) (map[string]int, bool) {
	cols := make(map[string]int)
	for i, cell := range rec {
		key, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	_, hasName := cols["name"]
	_, hasEmail := cols["email"]
	if !hasName && !hasEmail {
		return nil, false
	}
	return cols, true
}

func field(rec []string, cols map[string]int, key string) string {
	i, ok := cols[key]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// detectComma picks ';' for spreadsheet exports that use it, ',' otherwise.
func detectComma(data []byte) rune {
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}
