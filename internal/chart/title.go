package chart

import (
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// OptionTitle names the attribute an UpdateEvent changes. Controls are
// built with a fixed title, so the reducer never compares free-form strings.
type OptionTitle string

// Titles of the controls, one per attribute an event can change.
const (
	TitleMark                   OptionTitle = "mark"
	TitleField                  OptionTitle = "field"
	TitleEncoding               OptionTitle = "encoding"
	TitleType                   OptionTitle = vocab.OptType
	TitleBin                    OptionTitle = vocab.OptBin
	TitleAggregate              OptionTitle = vocab.OptAggregate
	TitleZero                   OptionTitle = vocab.OptZero
	TitleScale                  OptionTitle = vocab.OptScale
	TitleText                   OptionTitle = vocab.OptText
	TitleColor                  OptionTitle = vocab.OptColor
	TitleApplyColorToBackground OptionTitle = vocab.OptApplyColorToBackground
	TitleShortTimeLabels        OptionTitle = vocab.OptShortTimeLabels
)

var knownTitles = map[OptionTitle]bool{
	TitleMark: true, TitleField: true, TitleEncoding: true,
	TitleType: true, TitleBin: true, TitleAggregate: true, TitleZero: true,
	TitleScale: true, TitleText: true, TitleColor: true,
	TitleApplyColorToBackground: true, TitleShortTimeLabels: true,
}

// ParseOptionTitle converts a string into an OptionTitle. "channel" is
// accepted as an alias of "encoding".
func ParseOptionTitle(s string) (OptionTitle, error) {
	if s == "channel" {
		return TitleEncoding, nil
	}
	t := OptionTitle(s)
	if !knownTitles[t] {
		return "", &UnknownOptionError{Title: s, Scope: "any control"}
	}
	return t, nil
}

// String returns the title as written on its control.
func (t OptionTitle) String() string { return string(t) }

// IsOption reports whether t names an advanced option rather than one of
// the primary field, encoding or mark selectors.
func (t OptionTitle) IsOption() bool {
	switch t {
	case TitleMark, TitleField, TitleEncoding:
		return false
	}
	return knownTitles[t]
}
