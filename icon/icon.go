// Package icon renders the symbols printed next to CLI output, as emoji or plain text.
package icon

import (
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/key"
)

const (
	emoji = "emoji"
	plain = "plain"
)

// AvailableVariants lists the values icons.variant accepts.
func AvailableVariants() []string {
	return []string{emoji, plain}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Adult
	Challenge
	Lock
	Unlock
	Home
	Search
)

type iconDef struct {
	emoji string
	plain string
}

var icons = map[Icon]*iconDef{
	Success:   {emoji: "✅", plain: "✓"},
	Fail:      {emoji: "❌", plain: "✗"},
	Adult:     {emoji: "🔞", plain: "18+"},
	Challenge: {emoji: "🛡️", plain: "[cf]"},
	Lock:      {emoji: "🔒", plain: "[logged in]"},
	Unlock:    {emoji: "🔓", plain: "[logged out]"},
	Home:      {emoji: "🏠", plain: "#"},
	Search:    {emoji: "🔍", plain: ">"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns the symbol of i in the configured variant.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.get()
	}
	return ""
}
