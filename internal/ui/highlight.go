package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStyle is the chroma style used for code.
const HighlightStyle = "monokai"

// Highlight applies syntax highlighting to code using chroma. Unknown
// languages fall back to plain text; any chroma failure returns code as is.
func Highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// HighlightMarkdown highlights the fenced code blocks in content and
// leaves the prose untouched. An unterminated fence runs to the end.
func HighlightMarkdown(content string) string {
	var result strings.Builder
	inCode := false
	lang := ""
	var code strings.Builder

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				code.Reset()
			} else {
				inCode = false
				result.WriteString(Highlight(code.String(), lang))
				result.WriteString("\n")
			}
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if inCode {
		result.WriteString(Highlight(code.String(), lang))
	}
	return strings.TrimRight(result.String(), "\n")
}
