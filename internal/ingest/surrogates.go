package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
)

var surrogateRefPattern = regexp.MustCompile(`&#(?:[xX]([0-9a-fA-F]+)|([0-9]+));`)

// RepairSurrogates removes unpaired UTF-16 surrogates from s. Surrogates can
// arrive either as raw three byte sequences (ED A0..BF xx) or as numeric
// character references. Valid high/low pairs are combined into the code point
// they encode; lone halves are deleted.
func RepairSurrogates(s string) string {
	if s == "" {
		return s
	}
	return repairSurrogateRefs(repairSurrogateBytes(s))
}

func repairSurrogateBytes(s string) string {
	if !strings.Contains(s, "\xed") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		high, ok := surrogateAt(s, i)
		if !ok {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if utf16.IsSurrogate(high) && high < 0xDC00 {
			if low, ok := surrogateAt(s, i+3); ok && low >= 0xDC00 {
				sb.WriteRune(utf16.DecodeRune(high, low))
				i += 6
				continue
			}
		}
		i += 3
	}
	return sb.String()
}

// surrogateAt decodes a WTF-8 encoded surrogate starting at s[i].
func surrogateAt(s string, i int) (rune, bool) {
	if i+2 >= len(s) || s[i] != 0xED {
		return 0, false
	}
	b1, b2 := s[i+1], s[i+2]
	if b1 < 0xA0 || b1 > 0xBF || b2 < 0x80 || b2 > 0xBF {
		return 0, false
	}
	return 0xD000 | rune(b1&0x3F)<<6 | rune(b2&0x3F), true
}

func repairSurrogateRefs(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	matches := surrogateRefPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for i := 0; i < len(matches); i++ {
		m := matches[i]
		r := refValue(s, m)
		if !utf16.IsSurrogate(r) {
			continue
		}
		sb.WriteString(s[last:m[0]])
		last = m[1]
		if r < 0xDC00 && i+1 < len(matches) && matches[i+1][0] == m[1] {
			next := matches[i+1]
			if low := refValue(s, next); low >= 0xDC00 && low <= 0xDFFF {
				fmt.Fprintf(&sb, "&#x%X;", utf16.DecodeRune(r, low))
				last = next[1]
				i++
			}
		}
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func refValue(s string, m []int) rune {
	var (
		value uint64
		err   error
	)
	if m[2] >= 0 {
		value, err = strconv.ParseUint(s[m[2]:m[3]], 16, 32)
	} else {
		value, err = strconv.ParseUint(s[m[4]:m[5]], 10, 32)
	}
	if err != nil || value > 0x10FFFF {
		return -1
	}
	return rune(value)
}
