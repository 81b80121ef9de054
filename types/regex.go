package types

import (
	"regexp"
	"strings"
	"sync"
)

var patternCache sync.Map // string -> *regexp.Regexp

// CompilePattern compiles a pattern written either as a bare regular
// expression or as /body/flags. Recognised flags are s, m, i and x; u and r
// are accepted and have no effect on matching.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	body, prefix := pattern, ""
	if strings.HasPrefix(pattern, "/") {
		if last := strings.LastIndex(pattern, "/"); last > 0 {
			body = pattern[1:last]
			var flags strings.Builder
			for _, ch := range pattern[last+1:] {
				switch ch {
				case 's', 'm', 'i':
					flags.WriteRune(ch)
				case 'x':
					body = stripPatternSpace(body)
				case 'u', 'r':
				default:
					return nil, Errorf(E_CAST, "invalid regex modifier %q", ch)
				}
			}
			if flags.Len() > 0 {
				prefix = "(?" + flags.String() + ")"
			}
		}
	}

	re, err := regexp.Compile(prefix + body)
	if err != nil {
		return nil, Errorf(E_CAST, "invalid pattern %q: %v", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// stripPatternSpace removes unescaped whitespace and #-comments outside
// character classes
func stripPatternSpace(body string) string {
	var sb strings.Builder
	inClass, escaped, comment := false, false, false
	for _, ch := range body {
		switch {
		case comment:
			if ch == '\n' {
				comment = false
			}
			continue
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case !inClass && ch == '#':
			comment = true
			continue
		case !inClass && (ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'):
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
