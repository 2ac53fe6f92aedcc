// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// RowID identifies one row of a Table.
type RowID uint64

// String renders the row id in base 10.
func (r RowID) String() string { return fmt.Sprintf("%d", uint64(r)) }

// Row is one parsed CSV record, keyed by column name.
type Row map[string]string

// Table is a single loaded CSV file, its row ids, and (when an assignment
// directory was supplied) the owner set backing each row.
type Table struct {
	Name     string
	Header   []string
	Rows     []Row
	RowIDs   []RowID
	OwnerMap map[RowID]owner.Set
}

// LoadTable loads a CSV file and attaches owner metadata from the two
// companion JSON files <name>-index.json (row key -> row id) and
// <name>-owner.json (row key -> owner id).
func LoadTable(name, csvPath, indexPath, ownerPath string) (Table, error) {
	header, rows, err := readCSV(csvPath)
	if err != nil {
		return Table{}, err
	}

	index, err := readRowIndex(indexPath)
	if err != nil {
		return Table{}, err
	}
	ownerOf, err := readOwnerIndex(ownerPath)
	if err != nil {
		return Table{}, err
	}

	rowIDs := make([]RowID, len(rows))
	ownerMap := make(map[RowID]owner.Set, len(index))
	for key, rid := range index {
		oid, ok := ownerOf[key]
		if !ok {
			return Table{}, fmt.Errorf("%w: row key %q has no owner entry", ErrInvalidAssignment, key)
		}
		ownerMap[rid] = ownerMap[rid].Add(oid)
	}
	for i := range rows {
		rowIDs[i] = RowID(i)
	}

	return Table{Name: name, Header: header, Rows: rows, RowIDs: rowIDs, OwnerMap: ownerMap}, nil
}

// LoadTableWithoutAssignment loads a CSV file with no owner metadata.
func LoadTableWithoutAssignment(name, csvPath string) (Table, error) {
	header, rows, err := readCSV(csvPath)
	if err != nil {
		return Table{}, err
	}
	rowIDs := make([]RowID, len(rows))
	for i := range rows {
		rowIDs[i] = RowID(i)
	}
	return Table{Name: name, Header: header, Rows: rows, RowIDs: rowIDs}, nil
}

func readCSV(path string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func readRowIndex(path string) (map[string]RowID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssignment, err)
	}
	out := make(map[string]RowID, len(raw))
	for k, v := range raw {
		out[k] = RowID(v)
	}
	return out, nil
}

func readOwnerIndex(path string) (map[string]owner.ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]uint32
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssignment, err)
	}
	out := make(map[string]owner.ID, len(raw))
	for k, v := range raw {
		out[k] = owner.ID(v)
	}
	return out, nil
}
