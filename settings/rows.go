package settings

import (
	"context"
	"fmt"
)

// Select is a single or multi choice over options.
func Select(id, label string, options []string, display func(string) string, value []string, multi bool, minCount int) Row {
	return Row{
		ID:           id,
		Kind:         KindSelect,
		Label:        label,
		Value:        value,
		Options:      options,
		DisplayLabel: display,
		Multi:        multi,
		MinCount:     minCount,
	}
}

func Switch(id, label string, value bool) Row {
	return Row{ID: id, Kind: KindSwitch, Label: label, Value: value}
}

func Input(id, placeholder, value string, masked bool) Row {
	return Row{ID: id, Kind: KindInput, Label: placeholder, Placeholder: placeholder, Value: value, Masked: masked}
}

func Stepper(id, label string, value, min, max, step float64) Row {
	return Row{ID: id, Kind: KindStepper, Label: label, Value: value, Min: min, Max: max, Step: step}
}

func Label(id, label string, value string) Row {
	return Row{ID: id, Kind: KindLabel, Label: label, Value: value}
}

func MultilineLabel(id, label, value string) Row {
	return Row{ID: id, Kind: KindMultilineLabel, Label: label, Value: value}
}

func Button(id, label string, onTap func(ctx context.Context) error) Row {
	return Row{ID: id, Kind: KindButton, Label: label, OnTap: onTap}
}

func Navigation(form *Form) Row {
	return Row{ID: form.ID, Kind: KindNavigation, Label: form.Label, Form: form}
}

// Tap runs a button row.
func (r *Row) Tap(ctx context.Context) error {
	if r.Kind != KindButton || r.OnTap == nil {
		return fmt.Errorf("%s is not a button", r.ID)
	}
	return r.OnTap(ctx)
}
