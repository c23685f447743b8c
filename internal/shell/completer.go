package shell

import (
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/script"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// commands are the shell's own words; script.Verbs are accepted too.
var commands = []string{"show", "status", "spec", "help", "quit", "exit"}

// Completer completes command words, row numbers, option titles and the
// values each title accepts. Rows and columns are read from the session on
// every call, so rows added later complete too.
type Completer struct {
	columns func() []string
	rows    func() int
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a completer over the given column and row sources.
func NewCompleter(columns func() []string, rows func() int) *Completer {
	return &Completer{columns: columns, rows: rows}
}

// Do implements readline.AutoCompleter. It returns the suffixes that
// complete the word under the cursor and the length of that word.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		return nil, 0
	}
	text := string(line[:pos])
	start := strings.LastIndexAny(text, " \t") + 1
	word := text[start:]
	args := strings.Fields(text[:start])

	return complete(c.candidates(args), word), len([]rune(word))
}

// candidates lists what may follow the words already typed.
func (c *Completer) candidates(args []string) []string {
	if len(args) == 0 {
		return append(append([]string(nil), script.Verbs...), commands...)
	}
	switch verb := args[0]; verb {
	case "set", "unset":
		switch len(args) {
		case 1:
			return c.rowWords()
		case 2:
			if args[1] == "mark" {
				return markTitles()
			}
			return rowTitles()
		case 3:
			if verb == "set" {
				return c.values(args[2])
			}
		}
	case "mark":
		if len(args) == 1 {
			return vocab.Marks()
		}
	case "markopt":
		switch len(args) {
		case 1:
			return markTitles()
		case 2:
			return c.values(args[1])
		}
	case "reveal":
		if len(args) == 1 {
			return c.rowWords()
		}
	}
	return nil
}

func (c *Completer) rowWords() []string {
	n := 0
	if c.rows != nil {
		n = c.rows()
	}
	out := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return append(out, "mark")
}

func (c *Completer) values(title string) []string {
	t, err := chart.ParseOptionTitle(title)
	if err != nil {
		return nil
	}
	switch t {
	case chart.TitleField:
		var cols []string
		if c.columns != nil {
			cols = c.columns()
		}
		return append(append([]string(nil), cols...), vocab.Wildcard, "none")
	case chart.TitleEncoding:
		return vocab.Channels()
	case chart.TitleMark:
		return vocab.Marks()
	case chart.TitleType:
		return append(vocab.FieldTypes(), "auto")
	case chart.TitleAggregate:
		return append(vocab.Aggregates(), "none")
	case chart.TitleScale:
		return vocab.ScaleTypes()
	case chart.TitleColor:
		return append(vocab.MarkColors(), "none")
	case chart.TitleText:
		return nil
	default:
		return []string{"true", "false"}
	}
}

func rowTitles() []string {
	return []string{
		chart.TitleField.String(), chart.TitleEncoding.String(),
		chart.TitleType.String(), chart.TitleBin.String(), chart.TitleAggregate.String(),
		chart.TitleZero.String(), chart.TitleScale.String(), chart.TitleText.String(),
	}
}

func markTitles() []string {
	return []string{
		chart.TitleMark.String(), chart.TitleColor.String(),
		chart.TitleApplyColorToBackground.String(), chart.TitleShortTimeLabels.String(),
	}
}

func complete(candidates []string, prefix string) [][]rune {
	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out
}
