package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/constant"
	"github.com/papersrc/papersrc/style"
)

// Field is a registered configuration key with its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable overriding the field.
func (f Field) Env() string {
	return strings.ToUpper(constant.Papersrc + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the field's value type the way it is written in the config file.
func (f Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return fmt.Sprintf("%T", f.Value)
	}
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
	})
}

// Pretty renders the field with its current value for the terminal.
func (f Field) Pretty() string {
	label := style.Fg(style.SecondaryColor)
	lines := []string{
		style.Faint(f.Description),
		label("Key:") + "     " + style.Fg(style.AccentColor)(f.Key),
		label("Env:") + "     " + f.Env(),
		label("Value:") + "   " + highlight(viper.Get(f.Key)),
		label("Default:") + " " + highlight(f.Value),
		label("Type:") + "    " + f.Type(),
	}
	return strings.Join(lines, "\n")
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(style.SuccessColor)("true")
		}
		return style.Fg(style.ErrorColor)("false")
	case string:
		return style.Fg(style.WarningColor)(value)
	default:
		return fmt.Sprint(value)
	}
}
