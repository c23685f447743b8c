package controls

import (
	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// RowControlBundle holds the controls of one row of the panel. For the mark
// bundle Selector is the mark dropdown and Channel is nil.
type RowControlBundle struct {
	Row      int
	Selector *Control
	Channel  *Control
	Button   *Control
	Advanced *Control
}

// Controls returns the row's controls in display order, including the
// children of a visible advanced container.
func (b *RowControlBundle) Controls() []*Control {
	out := []*Control{b.Selector}
	if b.Channel != nil {
		out = append(out, b.Channel)
	}
	out = append(out, b.Button)
	if !b.Advanced.Hidden {
		out = append(out, b.Advanced.Children...)
	}
	return out
}

// Revealed reports whether the advanced options are shown.
func (b *RowControlBundle) Revealed() bool {
	return !b.Advanced.Hidden
}

// BuildEncodingRowControls builds the field dropdown, channel dropdown,
// reveal button and advanced container for one encoding row.
func BuildEncodingRowControls(columns []string, channel string, row int) *RowControlBundle {
	fieldOpts := make([]any, 0, len(columns)+1)
	fieldOpts = append(fieldOpts, nil)
	for _, c := range columns {
		fieldOpts = append(fieldOpts, c)
	}

	return &RowControlBundle{
		Row: row,
		Selector: &Control{
			Kind:        Dropdown,
			Role:        RoleField,
			Title:       chart.TitleField,
			Description: "field",
			Options:     fieldOpts,
			Row:         row,
		},
		Channel: &Control{
			Kind:        Dropdown,
			Role:        RoleEncoding,
			Title:       chart.TitleEncoding,
			Description: "encoding",
			Options:     stringsToAny(vocab.Channels()),
			Value:       channel,
			Row:         row,
		},
		Button: &Control{
			Kind:        Button,
			Role:        RoleButton,
			Description: "options",
			Disabled:    true,
			Row:         row,
		},
		Advanced: &Control{
			Kind:   Container,
			Role:   RoleAdvanced,
			Hidden: true,
			Row:    row,
		},
	}
}

// BuildMarkControls builds the mark dropdown with its options button and
// container. The button is always enabled.
func BuildMarkControls() *RowControlBundle {
	return &RowControlBundle{
		Row: chart.MarkRow,
		Selector: &Control{
			Kind:        Dropdown,
			Role:        RoleMark,
			Title:       chart.TitleMark,
			Description: "mark",
			Options:     stringsToAny(vocab.Marks()),
			Value:       vocab.DefaultMark,
			Row:         chart.MarkRow,
		},
		Button: &Control{
			Kind:        Button,
			Role:        RoleButton,
			Description: "options",
			Row:         chart.MarkRow,
		},
		Advanced: &Control{
			Kind:   Container,
			Role:   RoleAdvanced,
			Hidden: true,
			Row:    chart.MarkRow,
		},
	}
}

// RevealOptions builds one control per advanced option of a channel or
// mark. Each control starts from existing[option] when present and from the
// option default otherwise.
func RevealOptions(row int, name string, existing map[string]any) ([]*Control, error) {
	names, err := vocab.AdvancedOptionsFor(name)
	if err != nil {
		return nil, err
	}

	out := make([]*Control, 0, len(names))
	for _, opt := range names {
		value, ok := existing[opt]
		if !ok {
			value = vocab.DefaultOption(opt)
		}
		c := &Control{
			Role:        RoleOption,
			Title:       chart.OptionTitle(opt),
			Description: opt,
			Value:       value,
			Row:         row,
		}
		switch opt {
		case vocab.OptType:
			c.Kind = Dropdown
			c.Options = append([]any{vocab.AutoDetect}, stringsToAny(vocab.FieldTypes())...)
		case vocab.OptAggregate:
			c.Kind = Dropdown
			c.Options = append([]any{nil}, stringsToAny(vocab.Aggregates())...)
		case vocab.OptScale:
			c.Kind = Dropdown
			c.Options = stringsToAny(vocab.ScaleTypes())
		case vocab.OptColor:
			c.Kind = Dropdown
			c.Options = append([]any{nil}, stringsToAny(vocab.MarkColors())...)
		case vocab.OptText:
			c.Kind = TextInput
		default:
			c.Kind = Checkbox
		}
		out = append(out, c)
	}
	return out, nil
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
