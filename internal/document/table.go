package document

// HeaderCell is a column header. Only TH produces one.
type HeaderCell struct{ node Node }

// DataCell is a body cell. Only TD produces one.
type DataCell struct{ node Node }

// HeadRow is the single header row of a table.
type HeadRow struct{ cells []HeaderCell }

// BodyRow is one row of table data.
type BodyRow struct{ cells []DataCell }

// TH returns a header cell.
func TH(children ...Node) HeaderCell {
	return HeaderCell{node: container(KindTableHeaderCell, children)}
}

// TD returns a data cell.
func TD(children ...Node) DataCell {
	return DataCell{node: container(KindTableDataCell, children)}
}

// Head returns the header row.
func Head(cells ...HeaderCell) HeadRow { return HeadRow{cells: cells} }

// Row returns a body row.
func Row(cells ...DataCell) BodyRow { return BodyRow{cells: cells} }

// Table assembles a table node: table > head > row > th, table > body > row > td.
func Table(head HeadRow, rows ...BodyRow) Node {
	th := make([]Node, len(head.cells))
	for i, c := range head.cells {
		th[i] = c.node
	}
	headNode := container(KindTableHead, []Node{container(KindTableRow, th)})

	body := make([]Node, len(rows))
	for i, r := range rows {
		td := make([]Node, len(r.cells))
		for j, c := range r.cells {
			td[j] = c.node
		}
		body[i] = container(KindTableRow, td)
	}
	return container(KindTable, []Node{headNode, container(KindTableBody, body)})
}

