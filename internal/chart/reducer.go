package chart

import (
	"fmt"

	"github.com/yildizm/ChartShelf/internal/vocab"
)

// Reduce merges one event into the state. All checks run before anything is
// written, so a failed event leaves the state as it was. The caller must
// compile and render again after every successful call.
func Reduce(s *ChartState, ev UpdateEvent) error {
	if ev.Row == MarkRow {
		return reduceMark(&s.Mark, ev)
	}

	row, err := s.Row(ev.Row)
	if err != nil {
		return err
	}

	switch ev.Title {
	case TitleField:
		return reduceField(s, row, ev)
	case TitleEncoding:
		return reduceChannel(row, ev)
	case TitleText:
		return reduceText(s, row, ev)
	case TitleType:
		if err := checkRowOption(row, ev.Title); err != nil {
			return err
		}
		if ev.Value == nil || vocab.IsAutoDetect(ev.Value) {
			delete(row.Options, vocab.OptType)
			return nil
		}
		name, ok := ev.Value.(string)
		if !ok {
			return &InvalidValueError{Title: ev.Title, Value: ev.Value}
		}
		fieldType, err := vocab.ParseType(name)
		if err != nil {
			return err
		}
		row.Options[vocab.OptType] = fieldType
		return nil
	}

	if err := checkRowOption(row, ev.Title); err != nil {
		return err
	}
	setOrDelete(row.Options, string(ev.Title), ev.Value)
	return nil
}

func reduceMark(m *MarkSpec, ev UpdateEvent) error {
	if ev.Title == TitleMark {
		name, ok := ev.Value.(string)
		if !ok {
			return &InvalidValueError{Title: ev.Title, Value: ev.Value}
		}
		if !vocab.IsMark(name) {
			return &vocab.UnknownKeyError{Vocabulary: "mark", Key: name}
		}
		m.Mark = name
		return nil
	}

	allowed, err := vocab.AdvancedOptionsFor(m.Mark)
	if err != nil {
		return err
	}
	if !vocab.Contains(allowed, string(ev.Title)) {
		return &UnknownOptionError{Title: string(ev.Title), Scope: "mark " + m.Mark}
	}
	if m.Options == nil {
		m.Options = make(map[string]any)
	}
	setOrDelete(m.Options, string(ev.Title), ev.Value)
	return nil
}

func reduceField(s *ChartState, row *EncodingRow, ev UpdateEvent) error {
	if ev.Value == nil {
		row.Field = ""
		return nil
	}
	name, ok := ev.Value.(string)
	if !ok {
		return &InvalidValueError{Title: ev.Title, Value: ev.Value}
	}
	if name != "" && !s.knowsColumn(name) {
		return fmt.Errorf("field %q: %w", name, ErrUnknownColumn)
	}
	row.Field = name
	return nil
}

// reduceChannel moves a row to another channel and drops the options the
// new channel does not support.
func reduceChannel(row *EncodingRow, ev UpdateEvent) error {
	channel := vocab.ChannelForRow(ev.Row)
	if ev.Value != nil {
		name, ok := ev.Value.(string)
		if !ok {
			return &InvalidValueError{Title: ev.Title, Value: ev.Value}
		}
		if !vocab.IsChannel(name) {
			return &vocab.UnknownKeyError{Vocabulary: "channel", Key: name}
		}
		channel = name
	}

	allowed, err := vocab.AdvancedOptionsFor(channel)
	if err != nil {
		return err
	}
	row.Channel = channel
	for key := range row.Options {
		if !vocab.Contains(allowed, key) {
			delete(row.Options, key)
		}
	}
	return nil
}

// reduceText handles the text entry of the text channel: a non-empty value
// names the field directly, an empty one clears the text option.
func reduceText(s *ChartState, row *EncodingRow, ev UpdateEvent) error {
	if err := checkRowOption(row, ev.Title); err != nil {
		return err
	}
	var text string
	if ev.Value != nil {
		v, ok := ev.Value.(string)
		if !ok {
			return &InvalidValueError{Title: ev.Title, Value: ev.Value}
		}
		text = v
	}
	if text == "" {
		delete(row.Options, vocab.OptText)
		return nil
	}
	if !s.knowsColumn(text) {
		return fmt.Errorf("text %q: %w", text, ErrUnknownColumn)
	}
	row.Field = text
	return nil
}

func checkRowOption(row *EncodingRow, title OptionTitle) error {
	allowed, err := vocab.AdvancedOptionsFor(row.Channel)
	if err != nil {
		return err
	}
	if !vocab.Contains(allowed, string(title)) {
		return &UnknownOptionError{Title: string(title), Scope: "channel " + row.Channel}
	}
	return nil
}

func setOrDelete(opts map[string]any, key string, value any) {
	if value == nil {
		delete(opts, key)
		return
	}
	opts[key] = value
}
