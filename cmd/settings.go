package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsEditCmd, settingsResetCmd)

	settingsShowCmd.SetOut(os.Stdout)
	settingsEditCmd.Flags().StringArray("set", []string{}, "Set a row non-interactively as id=value, lists comma separated")
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and edit the settings of a source",
}

func sourceMenu(src source.Source) settings.Section {
	menu, ok := src.(settings.Menu)
	if !ok {
		handleErr(fmt.Errorf("%s has no settings", src.Name()))
	}

	section, err := menu.SourceMenu()
	handleErr(err)
	return section
}

func menuRow(section settings.Section, id string) (settings.Row, bool) {
	return lo.Find(section.Rows, func(r settings.Row) bool { return r.ID == id })
}

func rowValue(row settings.Row) string {
	switch value := row.Value.(type) {
	case []string:
		return strings.Join(lo.Map(value, func(v string, _ int) string { return row.Display(v) }), ", ")
	case string:
		if row.Masked && value != "" {
			return "********"
		}
		return value
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

var settingsShowCmd = &cobra.Command{
	Use:               "show <source>",
	Short:             "Print the settings of a source",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		menu := sourceMenu(loadSource(args[0]))

		for _, row := range menu.Rows {
			if row.Kind != settings.KindNavigation {
				continue
			}

			cmd.Printf("%s %s\n", style.Title(row.Label), style.Faint(row.ID))

			sections, err := row.Form.Sections()
			handleErr(err)

			for _, section := range sections {
				if section.Header != "" {
					cmd.Println(style.Bold(section.Header))
				}
				for _, r := range section.Rows {
					switch r.Kind {
					case settings.KindButton, settings.KindNavigation:
						continue
					case settings.KindMultilineLabel:
						cmd.Printf("  %s\n%s\n", style.Fg(style.SecondaryColor)(r.Label), rowValue(r))
					default:
						cmd.Printf("  %s %s\n", style.Fg(style.SecondaryColor)(r.Label+":"), rowValue(r))
					}
				}
			}
			cmd.Println()
		}
	},
}

var settingsResetCmd = &cobra.Command{
	Use:               "reset <source>",
	Short:             "Restore the default settings of a source",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src := loadSource(args[0])
		reset, ok := menuRow(sourceMenu(src), "reset")
		if !ok {
			handleErr(fmt.Errorf("%s cannot be reset", src.Name()))
		}

		handleErr(reset.Tap(cmd.Context()))
		fmt.Printf("%s reset %s settings\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), src.Name())
	},
}

var settingsEditCmd = &cobra.Command{
	Use:               "edit <source> [form]",
	Short:             "Edit the settings of a source",
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src := loadSource(args[0])
		menu := sourceMenu(src)

		var id string
		if len(args) == 2 {
			id = args[1]
		} else {
			handleErr(survey.AskOne(&survey.Select{
				Message: src.Name() + " settings",
				Options: lo.Map(menu.Rows, func(r settings.Row, _ int) string { return r.ID }),
				Description: func(value string, index int) string {
					return menu.Rows[index].Label
				},
			}, &id))
		}

		row, ok := menuRow(menu, id)
		if !ok {
			handleErr(fmt.Errorf("unknown settings form %s", id))
		}

		if row.Kind == settings.KindButton {
			handleErr(row.Tap(cmd.Context()))
			fmt.Printf("%s %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), row.Label)
			return
		}

		assignments := lo.Must(cmd.Flags().GetStringArray("set"))
		handleErr(editForm(cmd.Context(), row.Form, assignments))
		fmt.Printf("%s saved %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), row.Label)
	},
}

// editForm collects values for form, from assignments when given and from prompts otherwise.
func editForm(ctx context.Context, form *settings.Form, assignments []string) error {
	sections, err := form.Sections()
	if err != nil {
		return err
	}

	rows := lo.FlatMap(sections, func(s settings.Section, _ int) []settings.Row { return s.Rows })

	var values settings.Values
	if len(assignments) > 0 {
		values, err = parseAssignments(rows, assignments)
	} else {
		values, err = askRows(ctx, sections)
	}
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return nil
	}
	return form.Apply(ctx, values)
}

func parseAssignments(rows []settings.Row, assignments []string) (settings.Values, error) {
	values := settings.Values{}
	for _, assignment := range assignments {
		id, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("expected id=value, got %q", assignment)
		}

		row, found := lo.Find(rows, func(r settings.Row) bool { return r.ID == id })
		if !found {
			return nil, fmt.Errorf("unknown row %s", id)
		}

		value, err := parseRowValue(row, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		values[id] = value
	}
	return values, nil
}

func parseRowValue(row settings.Row, raw string) (any, error) {
	switch row.Kind {
	case settings.KindSelect:
		if raw == "" {
			return []string{}, nil
		}
		return lo.Map(strings.Split(raw, ","), func(s string, _ int) string { return strings.TrimSpace(s) }), nil
	case settings.KindSwitch:
		return strconv.ParseBool(raw)
	case settings.KindStepper:
		return strconv.ParseFloat(raw, 64)
	case settings.KindInput:
		return raw, nil
	default:
		return nil, fmt.Errorf("%s rows cannot be set", row.Kind)
	}
}

func askRows(ctx context.Context, sections []settings.Section) (settings.Values, error) {
	values := settings.Values{}

	for _, section := range sections {
		if section.Header != "" {
			fmt.Println(style.Bold(section.Header))
		}

		for _, row := range section.Rows {
			value, ok, err := askRow(ctx, row)
			if err != nil {
				return nil, err
			}
			if ok {
				values[row.ID] = value
			}
		}

		if section.Footer != "" {
			fmt.Println(style.Faint(section.Footer))
		}
	}

	return values, nil
}

// askRow prompts for one row. Rows without a value, like labels and buttons, report false.
func askRow(ctx context.Context, row settings.Row) (any, bool, error) {
	switch row.Kind {
	case settings.KindSelect:
		current, _ := row.Value.([]string)
		current = lo.Intersect(row.Options, current)
		describe := func(value string, _ int) string { return row.Display(value) }

		if row.Multi {
			var selected []string
			err := survey.AskOne(&survey.MultiSelect{
				Message:     row.Label,
				Options:     row.Options,
				Default:     current,
				Description: describe,
			}, &selected, survey.WithValidator(survey.MinItems(row.MinCount)))
			return selected, true, err
		}

		prompt := &survey.Select{
			Message:     row.Label,
			Options:     row.Options,
			Description: describe,
		}
		if len(current) > 0 {
			prompt.Default = current[0]
		}

		var selected string
		err := survey.AskOne(prompt, &selected)
		return []string{selected}, true, err

	case settings.KindSwitch:
		current, _ := row.Value.(bool)
		var answer bool
		err := survey.AskOne(&survey.Confirm{Message: row.Label, Default: current}, &answer)
		return answer, true, err

	case settings.KindInput:
		var answer string
		if row.Masked {
			err := survey.AskOne(&survey.Password{Message: row.Label}, &answer)
			return answer, true, err
		}
		current, _ := row.Value.(string)
		err := survey.AskOne(&survey.Input{Message: row.Label, Default: current}, &answer)
		return answer, true, err

	case settings.KindStepper:
		var answer string
		err := survey.AskOne(&survey.Input{
			Message: fmt.Sprintf("%s (%g-%g)", row.Label, row.Min, row.Max),
			Default: rowValue(row),
		}, &answer, survey.WithValidator(func(ans any) error {
			n, err := strconv.ParseFloat(fmt.Sprint(ans), 64)
			if err != nil {
				return fmt.Errorf("not a number")
			}
			if n < row.Min || n > row.Max {
				return fmt.Errorf("must be between %g and %g", row.Min, row.Max)
			}
			return nil
		}))
		if err != nil {
			return nil, false, err
		}
		n, _ := strconv.ParseFloat(answer, 64)
		return n, true, nil

	case settings.KindLabel, settings.KindMultilineLabel:
		fmt.Printf("%s %s\n", style.Fg(style.SecondaryColor)(row.Label+":"), rowValue(row))
		return nil, false, nil

	case settings.KindButton:
		var run bool
		if err := survey.AskOne(&survey.Confirm{Message: row.Label + "?"}, &run); err != nil || !run {
			return nil, false, err
		}
		return nil, false, row.Tap(ctx)

	case settings.KindNavigation:
		var open bool
		if err := survey.AskOne(&survey.Confirm{Message: "Open " + row.Label + "?"}, &open); err != nil || !open {
			return nil, false, err
		}
		return nil, false, editForm(ctx, row.Form, nil)
	}

	return nil, false, nil
}
