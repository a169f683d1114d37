package parser

import (
	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// buildTable hoists rows out of thead/tbody/tfoot and derives the cell
// matrix from the resulting row nodes.
func buildTable(b *builder, el *ingest.Element, sc scope) nodes.Node {
	table := &nodes.Table{
		Width:  firstAttr(el, "data-table-width", "width"),
		Layout: el.AttrValue("data-layout"),
	}
	table.Base = b.base(sc, b.children(el, sc))
	table.Cells, table.HasHeader = cellMatrix(table.Content)
	return table
}

func buildTableRow(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.TableRow{Base: b.base(sc, b.children(el, sc))}
}

func buildTableCell(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.TableCell{
		Base:      b.base(sc, b.children(el, sc)),
		IsHeader:  el.Local == "th",
		Rowspan:   spanAttr(el, "rowspan"),
		Colspan:   spanAttr(el, "colspan"),
		Highlight: firstAttr(el, "data-highlight-colour", "data-highlight-color"),
	}
}

// cellMatrix returns a rectangular matrix of cell contents. Rows shorter
// than the widest row are padded with nil cells. hasHeader reports whether
// the first row is made only of header cells.
func cellMatrix(content []nodes.Node) ([][][]nodes.Node, bool) {
	var (
		matrix [][][]nodes.Node
		first  []*nodes.TableCell
		width  int
	)
	for _, child := range content {
		row, ok := child.(*nodes.TableRow)
		if !ok {
			continue
		}
		var cells [][]nodes.Node
		var typed []*nodes.TableCell
		for _, rc := range row.Content {
			if cell, ok := rc.(*nodes.TableCell); ok {
				cells = append(cells, cell.Content)
				typed = append(typed, cell)
			}
		}
		if len(matrix) == 0 {
			first = typed
		}
		if len(cells) > width {
			width = len(cells)
		}
		matrix = append(matrix, cells)
	}

	for i, row := range matrix {
		for len(row) < width {
			row = append(row, nil)
		}
		matrix[i] = row
	}

	hasHeader := len(first) > 0
	for _, cell := range first {
		if !cell.IsHeader {
			hasHeader = false
			break
		}
	}
	return matrix, hasHeader
}
