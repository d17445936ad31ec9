package terminal

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// HeadingStyle is applied to Markdown heading lines.
var HeadingStyle = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)

// ParseText splits text into lines. ATX Markdown headings ("# Title") get
// a heading level, HeadingStyle and an anchor slug; later duplicate slugs
// get a numeric suffix. Tabs expand to four spaces.
func ParseText(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	seen := make(map[string]int)
	fenced := false
	for i, s := range raw {
		s = strings.ReplaceAll(s, "\t", "    ")
		lines[i] = Line{Text: s, Style: tcell.StyleDefault}

		if strings.HasPrefix(strings.TrimSpace(s), "```") {
			fenced = !fenced
			continue
		}
		if fenced {
			continue
		}
		level, title := heading(s)
		if level == 0 {
			continue
		}
		slug := Slug(title)
		if n := seen[slug]; n > 0 {
			seen[slug] = n + 1
			slug = slug + "-" + strconv.Itoa(n)
		} else {
			seen[slug] = 1
		}
		lines[i].Heading = level
		lines[i].Anchor = slug
		lines[i].Style = HeadingStyle
	}
	return lines
}

// heading returns the level and title of an ATX heading line.
func heading(s string) (int, string) {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	if level < len(s) && s[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(strings.TrimRight(s[level:], "#"))
}

// Slug lowercases s, keeps letters and digits and joins words with "-".
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
