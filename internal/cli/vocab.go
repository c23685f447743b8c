package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/ChartShelf/internal/controls"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// vocabTable is one named vocabulary.
type vocabTable struct {
	Name    string   `json:"name" yaml:"name"`
	Entries []string `json:"entries" yaml:"entries"`
}

// optionDefault is one advanced option of a mark or channel.
type optionDefault struct {
	Option  string `json:"option" yaml:"option"`
	Default string `json:"default" yaml:"default"`
}

func newVocabCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab [mark|channel]",
		Short: "List marks, channels and options",
		Long: `Without an argument, list the marks, channels, field types, aggregates,
scale types and colors the panel offers. With a mark or channel name, list
the advanced options it reveals and their defaults.

Examples:
  chartshelf vocab
  chartshelf vocab x
  chartshelf vocab mark_line -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeVocab(cmd.OutOrStdout(), getOutputFormat(), vocabTables())
			}
			opts, err := advancedOptions(args[0])
			if err != nil {
				return err
			}
			return writeVocab(cmd.OutOrStdout(), getOutputFormat(), opts)
		},
	}
}

func vocabTables() []vocabTable {
	return []vocabTable{
		{Name: "marks", Entries: vocab.Marks()},
		{Name: "channels", Entries: vocab.Channels()},
		{Name: "types", Entries: vocab.FieldTypes()},
		{Name: "aggregates", Entries: vocab.Aggregates()},
		{Name: "scales", Entries: vocab.ScaleTypes()},
		{Name: "colors", Entries: vocab.MarkColors()},
	}
}

// advancedOptions accepts a mark with or without its "mark_" prefix.
func advancedOptions(name string) ([]optionDefault, error) {
	if !vocab.IsChannel(name) && !strings.HasPrefix(name, "mark_") && vocab.IsMark("mark_"+name) {
		name = "mark_" + name
	}
	names, err := vocab.AdvancedOptionsFor(name)
	if err != nil {
		return nil, err
	}
	out := make([]optionDefault, 0, len(names))
	for _, n := range names {
		out = append(out, optionDefault{Option: n, Default: controls.Label(vocab.DefaultOption(n))})
	}
	return out, nil
}

func writeVocab(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	var b strings.Builder
	switch v := v.(type) {
	case []vocabTable:
		for _, t := range v {
			fmt.Fprintf(&b, "%-11s %s\n", t.Name+":", strings.Join(t.Entries, ", "))
		}
	case []optionDefault:
		for _, o := range v {
			fmt.Fprintf(&b, "%-24s %s\n", o.Option, o.Default)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
