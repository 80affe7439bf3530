package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/provider"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
	"github.com/papersrc/papersrc/util"
)

// loadSource resolves name to a source, falling back to the first default source when name is empty.
func loadSource(name string) source.Source {
	if name == "" {
		defaults := provider.Defaults()
		if len(defaults) == 0 {
			handleErr(fmt.Errorf("no source given and %s is empty", key.DefaultSources))
		}
		name = defaults[0].ID
	}

	p, ok := provider.Get(name)
	if !ok {
		handleErr(fmt.Errorf("unknown source %s, run \"papersrc sources list\"", style.Fg(style.ErrorColor)(name)))
	}

	src, err := p.CreateSource()
	handleErr(err)
	return src
}

// addOutputFlags registers --json and --schema on cmd.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	cmd.Flags().Bool("schema", false, "Print the JSON schema of the result and exit")
}

// argsOrSchema requires n positional arguments unless only the schema was asked for.
func argsOrSchema(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.RangeArgs(n, n)(cmd, args)
	}
}

// printSchema prints the JSON schema of v and reports whether it did.
func printSchema(cmd *cobra.Command, v any) bool {
	if !lo.Must(cmd.Flags().GetBool("schema")) {
		return false
	}

	schema := jsonschema.Reflect(v)
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(schema))
	return true
}

// printJSON prints v as JSON when --json is set and reports whether it did.
func printJSON(cmd *cobra.Command, v any) bool {
	if !lo.Must(cmd.Flags().GetBool("json")) {
		return false
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(v))
	return true
}

func wrapWidth() int {
	if width := viper.GetInt(key.OutputWrapWidth); width > 0 {
		return width
	}

	width, _, err := util.TerminalSize()
	if err != nil {
		return 80
	}
	return width
}

func titleLine(t *source.Title) string {
	line := fmt.Sprintf("%s %s", style.Faint(t.ID), style.Bold(t.Name()))
	if t.Hentai {
		line += " " + style.Fg(style.AdultColor)(icon.Get(icon.Adult))
	}
	return line
}

func printTitles(cmd *cobra.Command, titles []*source.Title) {
	if len(titles) == 0 {
		cmd.Println(style.Faint("no results"))
		return
	}

	for _, t := range titles {
		cmd.Println(titleLine(t))
	}
}

func printTitle(cmd *cobra.Command, src source.Source, t *source.Title) {
	wrap := style.Wrap(wrapWidth())
	field := func(name, value string) {
		if value != "" {
			cmd.Printf("%s %s\n", style.Fg(style.SecondaryColor)(name+":"), value)
		}
	}

	cmd.Println(titleLine(t))
	if len(t.Titles) > 1 {
		cmd.Println(style.Faint(strings.Join(t.Titles[1:], " / ")))
	}
	cmd.Println()

	field("Author", t.Author)
	if t.Artist != t.Author {
		field("Artist", t.Artist)
	}
	field("Status", string(t.Status))
	if !t.LastUpdate.IsZero() {
		field("Updated", t.LastUpdate.Format("2006-01-02"))
	}
	field("Cover", t.Image)
	field("Link", src.ShareURL(t.ID))

	for _, section := range t.Tags {
		field(section.Label, strings.Join(lo.Map(section.Tags, func(tag source.Tag, _ int) string {
			return tag.Label
		}), ", "))
	}

	if t.Description != "" {
		cmd.Println()
		cmd.Println(wrap(t.Description))
	}
}
