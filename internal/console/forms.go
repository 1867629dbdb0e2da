package console

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator reports fields by their wire names, which are also the form field names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs the presence checks declared on an input struct
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.NewMissingFieldError(verrs[0].Field())
	}
	return apperrors.NewInternalError("form validation failed", err)
}

// formReader reads typed values from a posted form, keeping the first conversion error
type formReader struct {
	r   *http.Request
	err error
}

func newFormReader(r *http.Request) *formReader {
	f := &formReader{r: r}
	if err := r.ParseForm(); err != nil {
		f.err = apperrors.NewInvalidParameterError("form", err.Error())
	}
	return f
}

func (f *formReader) fail(name, reason string) {
	if f.err == nil {
		f.err = apperrors.NewInvalidParameterError(name, reason)
	}
}

// Err returns the first conversion error
func (f *formReader) Err() error {
	return f.err
}

// String returns the trimmed value of name
func (f *formReader) String(name string) string {
	return strings.TrimSpace(f.r.PostFormValue(name))
}

// Bool reads a checkbox
func (f *formReader) Bool(name string) bool {
	return f.r.PostFormValue(name) != ""
}

// Int reads a whole number; empty is 0
func (f *formReader) Int(name string) int {
	v := f.OptionalInt(name)
	if v == nil {
		return 0
	}
	return *v
}

// OptionalInt reads a whole number; empty is nil
func (f *formReader) OptionalInt(name string) *int {
	s := f.String(name)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.fail(name, "must be a whole number")
		return nil
	}
	return &v
}

// Int64 reads an id; empty is 0
func (f *formReader) Int64(name string) int64 {
	s := f.String(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.fail(name, "must be a whole number")
		return 0
	}
	return v
}

// Float reads a number; empty is 0
func (f *formReader) Float(name string) float64 {
	v := f.OptionalFloat(name)
	if v == nil {
		return 0
	}
	return *v
}

// OptionalFloat reads a number; empty is nil
func (f *formReader) OptionalFloat(name string) *float64 {
	s := f.String(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.fail(name, "must be a number")
		return nil
	}
	return &v
}

// Decimal reads an exact amount; empty is zero
func (f *formReader) Decimal(name string) decimal.Decimal {
	s := f.String(name)
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		f.fail(name, "must be a decimal number")
		return decimal.Zero
	}
	return v
}

func textField(name, label, value string) fieldView {
	return fieldView{Name: name, Label: label, Type: "text", Value: value}
}

func numberField(name, label string, value interface{}) fieldView {
	return fieldView{Name: name, Label: label, Type: "number", Value: formatNumber(value), Step: "1"}
}

func decimalField(name, label string, value interface{}) fieldView {
	return fieldView{Name: name, Label: label, Type: "text", Value: formatNumber(value)}
}

func checkField(name, label string, checked bool) fieldView {
	return fieldView{Name: name, Label: label, Type: "checkbox", Checked: checked}
}

func dateField(name, label, value string) fieldView {
	return fieldView{Name: name, Label: label, Type: "datetime-local", Value: value}
}

func selectField(name, label, value string, options []optionView) fieldView {
	opts := make([]optionView, len(options))
	found := false
	for i, o := range options {
		o.Selected = o.Value == value
		found = found || o.Selected
		opts[i] = o
	}
	// Keep a current value whose option list could not be loaded.
	if !found && value != "" {
		opts = append(opts, optionView{Value: value, Label: "#" + value, Selected: true})
	}
	return fieldView{Name: name, Label: label, Type: "select", Value: value, Options: opts}
}

func (f fieldView) required() fieldView {
	f.Required = true
	return f
}

func (f fieldView) typed(t string) fieldView {
	f.Type = t
	return f
}

func (f fieldView) step(s string) fieldView {
	f.Step = s
	return f
}

// formatNumber renders numbers the way a form input expects them; nil pointers are empty
func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case *int:
		if n == nil {
			return ""
		}
		return strconv.Itoa(*n)
	case *float64:
		if n == nil {
			return ""
		}
		return strconv.FormatFloat(*n, 'f', -1, 64)
	case decimal.Decimal:
		return n.String()
	case fmt.Stringer:
		return n.String()
	default:
		return fmt.Sprint(n)
	}
}

// activeFilterOptions is the tri-state choice used by active_only filters
var activeFilterOptions = []optionView{
	{Value: "", Label: "Default"},
	{Value: "true", Label: "Active only"},
	{Value: "false", Label: "Inactive included"},
}
