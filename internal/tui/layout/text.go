package layout

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches SGR escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const resetCode = "\x1b[0m"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the number of runes left after stripping ANSI codes.
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText cuts text to maxWidth runes, ending with the configured
// ellipsis when it had to cut. Reports whether it cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}

	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}
	return string(runes[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateWithSuffix truncates text so that text+suffix fits maxWidth,
// always keeping the suffix (a marker such as " ↗") when it fits at all.
func TruncateWithSuffix(text, suffix string, maxWidth int, cfg TextConfig) (string, bool) {
	suffixLen := utf8.RuneCountInString(suffix)
	if utf8.RuneCountInString(text)+suffixLen <= maxWidth {
		return text + suffix, false
	}
	if suffixLen >= maxWidth {
		return TruncateText(text+suffix, maxWidth, cfg)
	}

	cut, _ := TruncateText(text, maxWidth-suffixLen, cfg)
	return cut + suffix, true
}

// TruncateANSIAware truncates styled text to maxWidth visible runes. Escape
// codes are copied through untouched, and a reset is appended after the
// ellipsis so no style bleeds into what follows.
func TruncateANSIAware(styled string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styled) <= maxWidth {
		return styled
	}

	keep := maxWidth - utf8.RuneCountInString(cfg.Ellipsis)
	if keep < 0 {
		keep = 0
	}

	codes := ansiRegex.FindAllStringIndex(styled, -1)
	var out []byte
	visible := 0
	for i := 0; i < len(styled) && visible < keep; {
		if len(codes) > 0 && codes[0][0] == i {
			out = append(out, styled[codes[0][0]:codes[0][1]]...)
			i = codes[0][1]
			codes = codes[1:]
			continue
		}

		_, size := utf8.DecodeRuneInString(styled[i:])
		out = append(out, styled[i:i+size]...)
		visible++
		i += size
	}

	return string(out) + cfg.Ellipsis + resetCode
}
