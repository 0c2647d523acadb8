package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"ochat/config"
)

var fenceRegex = regexp.MustCompile("(?s)^\\s*```([\\w+-]*)\\s*\\n(.*?)\\n?```\\s*$")

// Bubble is one rendered block of the transcript: a role label and a content area.
type Bubble struct {
	Label     string
	Content   string
	User      bool
	Code      bool
	Timestamp time.Time
}

// Transcript is the append-only list of bubbles shown in the chat viewport.
// Rendered output is cached per bubble and invalidated when width or theme change.
type Transcript struct {
	bubbles  []Bubble
	rendered []string
	width    int
	theme    Theme
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(b Bubble) {
	t.bubbles = append(t.bubbles, b)
	t.rendered = append(t.rendered, "")
}

func (t *Transcript) Reset() {
	t.bubbles = nil
	t.rendered = nil
}

func (t *Transcript) Len() int {
	return len(t.bubbles)
}

// Bubbles returns a copy of the bubbles in display order.
func (t *Transcript) Bubbles() []Bubble {
	out := make([]Bubble, len(t.bubbles))
	copy(out, t.bubbles)
	return out
}

// Render draws every bubble for the given width and theme.
func (t *Transcript) Render(width int, theme Theme) string {
	if len(t.bubbles) == 0 {
		return DimStyle.Render("No messages yet. Type a prompt and press Enter.")
	}

	if width != t.width || theme != t.theme {
		for i := range t.rendered {
			t.rendered[i] = ""
		}
		t.width = width
		t.theme = theme
	}

	var out strings.Builder
	for i, b := range t.bubbles {
		if t.rendered[i] == "" {
			t.rendered[i] = renderBubble(b, width, theme)
		}
		out.WriteString(t.rendered[i])
		out.WriteString("\n")
	}
	return out.String()
}

func renderBubble(b Bubble, width int, theme Theme) string {
	labelStyle := AssistantStyle
	if b.User {
		labelStyle = UserStyle
	}
	header := fmt.Sprintf("%s %s", DimStyle.Render(b.Timestamp.Format("[15:04]")), labelStyle.Render(b.Label))

	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var body string
	switch {
	case b.Code:
		body = CodeBubbleStyle.Render(renderCode(b.Content, theme))
	case b.User:
		body = ProseBubbleStyle.Width(inner).Render(b.Content)
	default:
		body = ProseBubbleStyle.Width(inner).Render(renderProse(b.Content, inner-2))
	}

	return header + "\n" + body
}

// renderProse renders markdown for the terminal, wrapped to width.
func renderProse(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return DimStyle.Render("(empty response)")
	}

	// Autolink off so terminals handle URL detection themselves
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, markdown.NewRenderer(width, 0))

	return strings.TrimRight(string(rendered), "\n")
}

// renderCode keeps the response verbatim in fixed columns and highlights it.
// A response wrapped in a single fenced block is unwrapped and its language tag used.
func renderCode(content string, theme Theme) string {
	if strings.TrimSpace(content) == "" {
		return DimStyle.Render("(empty response)")
	}

	language := ""
	code := content
	if m := fenceRegex.FindStringSubmatch(content); m != nil {
		language = m[1]
		code = m[2]
	}

	return highlightCode(code, language, theme)
}

func highlightCode(code, language string, theme Theme) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(theme.ChromaStyle())
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Transcript] tokenise failed for %q: %v", language, err)
		}
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}
