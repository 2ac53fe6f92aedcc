// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// DataSet is every table loaded from one CSV directory, plus the union of
// every owner appearing in any table's assignment metadata (empty when no
// assignment directory was supplied, matching load_without_assignment).
type DataSet struct {
	Name     string
	Tables   map[string]Table
	OwnerSet owner.Set
}

// Load glob-reads every *.csv file in csvDir and, when assignmentDir is
// non-empty, attaches owner metadata from the companion JSON files in that
// directory.
func Load(logger *logrus.Logger, name, csvDir, assignmentDir string) (DataSet, error) {
	begin := time.Now()
	if logger != nil {
		logger.WithFields(logrus.Fields{"csv_dir": csvDir, "assignment_dir": assignmentDir}).Info("loading dataset")
	}

	paths, err := filepath.Glob(filepath.Join(csvDir, "*.csv"))
	if err != nil {
		return DataSet{}, err
	}

	tables := make(map[string]Table, len(paths))
	ownerIDs := map[owner.ID]struct{}{}
	for _, csvPath := range paths {
		tableName := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))

		var table Table
		var loadErr error
		if assignmentDir == "" {
			table, loadErr = LoadTableWithoutAssignment(tableName, csvPath)
		} else {
			indexPath := filepath.Join(assignmentDir, tableName+"-index.json")
			ownerPath := filepath.Join(assignmentDir, tableName+"-owner.json")
			table, loadErr = LoadTable(tableName, csvPath, indexPath, ownerPath)
		}
		if loadErr != nil {
			return DataSet{}, loadErr
		}

		for _, s := range table.OwnerMap {
			for _, id := range s.Slice() {
				ownerIDs[id] = struct{}{}
			}
		}
		tables[tableName] = table
	}

	ids := make([]owner.ID, 0, len(ownerIDs))
	for id := range ownerIDs {
		ids = append(ids, id)
	}

	if logger != nil {
		logger.WithField("elapsed", time.Since(begin)).Info("dataset loaded")
	}
	return DataSet{Name: name, Tables: tables, OwnerSet: owner.NewSet(ids...)}, nil
}

// RegistryFromViper builds a Registry seeded with the built-in plans, then
// overlays any additional plans found under the "join_plans" key of v, each
// shaped like the entries of builtinPlans in joinplan.go. This lets a deployment add datasets
// without recompiling the binary.
func RegistryFromViper(v *viper.Viper) (*Registry, error) {
	reg := NewRegistry()
	if v == nil || !v.IsSet("join_plans") {
		return reg, nil
	}

	var overlay map[string]JoinPlan
	if err := v.UnmarshalKey("join_plans", &overlay); err != nil {
		return nil, fmt.Errorf("dataset: decoding join_plans overlay: %w", err)
	}
	for name, plan := range overlay {
		reg.Add(name, plan)
	}
	return reg, nil
}

// joinedRow is one row produced by Join: for every table the plan touches,
// the RowID of the contributing row.
type joinedRow map[string]RowID

// Join executes plan's nested-loop equality joins over ds's tables. It
// does not optimize join order, push down predicates, or support outer
// joins; it exists only to turn already-small owner-assignment CSVs into
// joined tuples.
func Join(ds DataSet, plan JoinPlan) ([]joinedRow, error) {
	initTable, ok := ds.Tables[plan.InitTable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, plan.InitTable)
	}

	rows := make([]joinedRow, len(initTable.Rows))
	for i := range initTable.Rows {
		rows[i] = joinedRow{plan.InitTable: initTable.RowIDs[i]}
	}
	joined := map[string]Table{plan.InitTable: initTable}

	for _, step := range plan.Steps {
		right, ok := ds.Tables[step.TableToJoin]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, step.TableToJoin)
		}
		if err := checkJoinKeys(joined, right, step); err != nil {
			return nil, err
		}

		var next []joinedRow
		for _, left := range rows {
			leftKey, err := compositeKey(joined, left, step.LeftJoinKeys)
			if err != nil {
				return nil, err
			}
			for i, rrow := range right.Rows {
				rightKey := rowCompositeKey(rrow, step.RightJoinKeys)
				if leftKey != rightKey {
					continue
				}
				out := make(joinedRow, len(left)+1)
				for k, v := range left {
					out[k] = v
				}
				out[step.TableToJoin] = right.RowIDs[i]
				next = append(next, out)
			}
		}
		rows = next
		joined[step.TableToJoin] = right
	}

	return rows, nil
}

func checkJoinKeys(joined map[string]Table, right Table, step JoinStep) error {
	for _, col := range step.RightJoinKeys {
		if !hasColumn(right.Header, col) {
			return fmt.Errorf("%w: %s.%s", ErrMissingJoinKey, right.Name, col)
		}
	}
	// Left keys may originate from any already-joined table; the caller
	// resolves them row-by-row via compositeKey, so only existence in at
	// least one joined table is checked here.
	for _, col := range step.LeftJoinKeys {
		found := false
		for _, t := range joined {
			if hasColumn(t.Header, col) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrMissingJoinKey, col)
		}
	}
	return nil
}

func hasColumn(header []string, col string) bool {
	for _, h := range header {
		if h == col {
			return true
		}
	}
	return false
}

func compositeKey(joined map[string]Table, row joinedRow, cols []string) (string, error) {
	var b strings.Builder
	for _, col := range cols {
		val, ok := lookupColumn(joined, row, col)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingJoinKey, col)
		}
		b.WriteString(val)
		b.WriteByte('\x00')
	}
	return b.String(), nil
}

func lookupColumn(joined map[string]Table, row joinedRow, col string) (string, bool) {
	for tableName, rid := range row {
		t := joined[tableName]
		v, ok := rowByID(t, rid)[col]
		if ok {
			return v, true
		}
	}
	return "", false
}

func rowByID(t Table, rid RowID) Row {
	for i, id := range t.RowIDs {
		if id == rid {
			return t.Rows[i]
		}
	}
	return nil
}

func rowCompositeKey(row Row, cols []string) string {
	var b strings.Builder
	for _, col := range cols {
		b.WriteString(row[col])
		b.WriteByte('\x00')
	}
	return b.String()
}
