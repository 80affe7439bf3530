// Package settings describes source settings as forms bound to a store.
//
// A Form is a plain value: the rendering layer (the CLI here) walks its sections
// and rows, collects Values and hands them back to Submit.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Kind of a row.
type Kind string

const (
	KindSelect         Kind = "select"
	KindSwitch         Kind = "switch"
	KindInput          Kind = "input"
	KindStepper        Kind = "stepper"
	KindLabel          Kind = "label"
	KindMultilineLabel Kind = "multiline_label"
	KindButton         Kind = "button"
	KindNavigation     Kind = "navigation"
)

// Row is one widget of a section. Which fields matter depends on Kind.
type Row struct {
	ID    string
	Kind  Kind
	Label string
	Value any

	// select
	Options      []string
	DisplayLabel func(option string) string
	Multi        bool
	MinCount     int

	// input
	Placeholder string
	Masked      bool

	// stepper
	Min, Max, Step float64

	// button
	OnTap func(ctx context.Context) error

	// navigation
	Form *Form
}

// Display returns the label of option, falling back to the option itself.
func (r *Row) Display(option string) string {
	if r.DisplayLabel == nil {
		return option
	}
	return r.DisplayLabel(option)
}

// Section groups rows under an optional header and footer.
type Section struct {
	ID     string
	Header string
	Footer string
	Rows   []Row
}

// Form is a page of sections with a submit handler.
type Form struct {
	ID    string
	Label string
	// Sections is evaluated each time the form is opened so it reflects the store.
	Sections func() ([]Section, error)
	Submit   func(ctx context.Context, values Values) error
}

// ErrNoSubmit is returned by Form.Apply for read-only forms.
var ErrNoSubmit = errors.New("form has no submit handler")

// Validate checks selection counts and stepper bounds against the form's rows.
func (f *Form) Validate(values Values) error {
	sections, err := f.Sections()
	if err != nil {
		return err
	}
	return validate(sections, values)
}

func validate(sections []Section, values Values) error {
	var errs []error
	for _, section := range sections {
		for _, row := range section.Rows {
			value, ok := values[row.ID]
			if !ok {
				continue
			}

			switch row.Kind {
			case KindSelect:
				selected := toStrings(value)
				if len(selected) < row.MinCount {
					errs = append(errs, fmt.Errorf("%s: select at least %d", row.ID, row.MinCount))
				}
				if unknown, found := lo.Find(selected, func(s string) bool { return !lo.Contains(row.Options, s) }); found {
					errs = append(errs, fmt.Errorf("%s: unknown option %q", row.ID, unknown))
				}
			case KindStepper:
				n, ok := toFloat(value)
				if !ok {
					errs = append(errs, fmt.Errorf("%s: not a number", row.ID))
				} else if n < row.Min || n > row.Max {
					errs = append(errs, fmt.Errorf("%s: must be between %g and %g", row.ID, row.Min, row.Max))
				}
			}
		}
	}

	return errors.Join(errs...)
}

// complete returns values with every editable row missing from it set to the row's current value.
func complete(sections []Section, values Values) Values {
	merged := make(Values, len(values))
	for _, section := range sections {
		for _, row := range section.Rows {
			switch row.Kind {
			case KindSelect, KindSwitch, KindInput, KindStepper:
				merged[row.ID] = row.Value
			}
		}
	}
	for id, value := range values {
		merged[id] = value
	}
	return merged
}

// Apply validates values and submits them. Rows left out of values keep their current value,
// so a partial submit never resets the other fields.
func (f *Form) Apply(ctx context.Context, values Values) error {
	if f.Submit == nil {
		return ErrNoSubmit
	}

	sections, err := f.Sections()
	if err != nil {
		return err
	}

	values = complete(sections, values)
	if err := validate(sections, values); err != nil {
		return err
	}
	return f.Submit(ctx, values)
}

// Static wraps fixed sections into a Sections func.
func Static(sections ...Section) func() ([]Section, error) {
	return func() ([]Section, error) {
		return sections, nil
	}
}
