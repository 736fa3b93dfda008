package tui

import (
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formField is one labelled line of an admin form.
type formField struct {
	key    string // validation field name
	label  string
	value  string
	hint   string // placeholder shown while empty
	secret bool
	// choices turns the field into a picker cycled with left/right.
	choices []string
}

// fieldSet is a vertical list of fields with one focused.
type fieldSet struct {
	fields []formField
	focus  int
}

func newFieldSet(fields ...formField) fieldSet {
	return fieldSet{fields: fields}
}

func (s *fieldSet) next() {
	if len(s.fields) > 0 {
		s.focus = (s.focus + 1) % len(s.fields)
	}
}

func (s *fieldSet) prev() {
	if len(s.fields) > 0 {
		s.focus = (s.focus - 1 + len(s.fields)) % len(s.fields)
	}
}

func (s fieldSet) focused() string {
	if len(s.fields) == 0 {
		return ""
	}
	return s.fields[s.focus].key
}

func (s fieldSet) get(key string) string {
	for _, f := range s.fields {
		if f.key == key {
			return f.value
		}
	}
	return ""
}

func (s *fieldSet) set(key, value string) {
	for i := range s.fields {
		if s.fields[i].key == key {
			s.fields[i].value = value
			return
		}
	}
}

// focusKey moves focus to the named field if present.
func (s *fieldSet) focusKey(key string) {
	for i, f := range s.fields {
		if f.key == key {
			s.focus = i
			return
		}
	}
}

// handle applies a key to the focused field and reports whether it was
// consumed. Picker fields cycle on left/right and ignore typing.
func (s *fieldSet) handle(key string) bool {
	if len(s.fields) == 0 {
		return false
	}
	f := &s.fields[s.focus]
	if len(f.choices) > 0 {
		switch key {
		case "left", "right":
			i := 0
			for j, c := range f.choices {
				if c == f.value {
					i = j
					break
				}
			}
			if key == "right" {
				i = (i + 1) % len(f.choices)
			} else {
				i = (i - 1 + len(f.choices)) % len(f.choices)
			}
			f.value = f.choices[i]
			return true
		}
		return false
	}
	next := editRune(f.value, key)
	if next == f.value && key != "backspace" {
		return false
	}
	f.value = next
	return true
}

// view renders the fields. errKey marks the field a validation error
// belongs to; extra maps field keys to a note rendered under the field.
func (s fieldSet) view(width int, errKey, errMsg string, extra map[string]string) string {
	labelW := 0
	for _, f := range s.fields {
		if n := utf8.RuneCountInString(f.label); n > labelW {
			labelW = n
		}
	}
	valueW := width - labelW - 8
	if valueW < 10 {
		valueW = 10
	}

	var b strings.Builder
	for i, f := range s.fields {
		focused := i == s.focus
		marker := "  "
		if focused {
			marker = accentStyle.Render("> ")
		}
		label := f.label + strings.Repeat(" ", labelW-utf8.RuneCountInString(f.label))
		if focused {
			label = inputPromptStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}

		value := f.value
		if f.secret {
			value = strings.Repeat("•", utf8.RuneCountInString(value))
		}
		var rendered string
		switch {
		case len(f.choices) > 0:
			v := value
			if v == "" {
				v = "-"
			}
			if focused {
				rendered = dimStyle.Render("◂ ") + selectedStyle.Render(v) + dimStyle.Render(" ▸")
			} else {
				rendered = normalStyle.Render(v)
			}
		case value == "" && !focused:
			rendered = inputPlaceholderStyle.Render(f.hint)
		case focused:
			// Show the tail so the cursor stays visible on long input.
			runes := []rune(value)
			if len(runes) > valueW-1 {
				value = "…" + string(runes[len(runes)-(valueW-2):])
			}
			rendered = selectedStyle.Render(value) + accentStyle.Render("_")
		default:
			rendered = normalStyle.Render(truncStr(oneLine(value), valueW))
		}

		b.WriteString(" " + marker + label + "  " + rendered + "\n")
		if errKey != "" && f.key == errKey {
			b.WriteString(strings.Repeat(" ", labelW+5) + rejectStyle.Render(errMsg) + "\n")
		}
		if note := extra[f.key]; note != "" {
			b.WriteString(strings.Repeat(" ", labelW+5) + note + "\n")
		}
	}
	return b.String()
}
