package docsync

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced code block found in a Markdown document.
type CodeBlock struct {
	Lang string
	Code []byte
}

// MarkdownBlocks parses a Markdown document and returns its fenced code
// blocks in order. It backs the render/re-parse round-trip checks: a block
// rendered by the Markdown dialect must come back out with the same
// language tag and byte-identical code.
func MarkdownBlocks(source []byte) ([]CodeBlock, error) {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source)).OwnerDocument()

	var blocks []CodeBlock

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering || node.Kind() != ast.KindFencedCodeBlock {
			return ast.WalkContinue, nil
		}

		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		blocks = append(blocks, CodeBlock{
			Lang: string(fcb.Language(source)),
			Code: blockCode(fcb, source),
		})

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

func blockCode(fcb *ast.FencedCodeBlock, source []byte) []byte {
	var buff bytes.Buffer

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		buff.Write(seg.Value(source))
	}

	return buff.Bytes()
}
