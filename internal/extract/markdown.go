package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownStrategy parses the reply as markdown and extracts candidates from
// paragraph lines, list items, and code blocks. Useful when the model
// insists on decorating its answer despite instructions.
type MarkdownStrategy struct{}

// Name implements Strategy.
func (MarkdownStrategy) Name() string { return "markdown" }

// Extract implements Strategy.
func (MarkdownStrategy) Extract(reply string) ([]string, error) {
	source := []byte(reply)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var candidates []string
	collect := func(raw string) {
		for _, line := range strings.Split(raw, "\n") {
			if candidate, ok := candidateFromLine(line); ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.CodeBlock:
			collect(blockLines(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			collect(blockLines(node, source))
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			collect(string(node.Text(source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if len(candidates) == 0 {
		return nil, &EmptyResponseError{Strategy: "markdown"}
	}
	return candidates, nil
}

// blockLines reassembles the raw source lines backing a block node.
func blockLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}
