package postgres

import (
	"fmt"
	"strings"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanStatisticRow maps one com_statistics row into a Statistic.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanStatisticRow(row scanner) (statistic.Statistic, error) {
	var (
		stat      statistic.Statistic
		precision string
	)

	if err := row.Scan(
		&stat.ApplicationCode,
		&stat.Count,
		&precision,
		&stat.What,
		&stat.When,
	); err != nil {
		return statistic.Statistic{}, fmt.Errorf("failed to scan statistic row: %w", err)
	}

	p, err := statistic.ParsePrecision(precision)
	if err != nil {
		return statistic.Statistic{}, fmt.Errorf("statistic row has %w", err)
	}
	stat.Precision = p

	return stat, nil
}

// precisionClause builds "(stat_precision = $n OR stat_precision = $n+1 ...)" for the
// members of set, numbering placeholders from firstPlaceholder. The returned args line
// up with the placeholders. An empty set cannot produce a satisfiable clause and is
// rejected with ErrInvalidArgument.
func precisionClause(set statistic.PrecisionSet, firstPlaceholder int) (string, []interface{}, error) {
	if set.IsEmpty() {
		return "", nil, statistic.InvalidArgumentf("at least one precision is required")
	}

	members := set.Strings()
	terms := make([]string, len(members))
	args := make([]interface{}, len(members))
	for i, name := range members {
		terms[i] = fmt.Sprintf("stat_precision = $%d", firstPlaceholder+i)
		args[i] = name
	}
	return "(" + strings.Join(terms, " OR ") + ")", args, nil
}

// windowClause builds the OR-combined date predicate for the given windows, numbering
// placeholders from firstPlaceholder.
func windowClause(windows []statistic.Window, firstPlaceholder int) (string, []interface{}) {
	terms := make([]string, len(windows))
	args := make([]interface{}, 0, len(windows)*2)
	for i, w := range windows {
		n := firstPlaceholder + i*2
		terms[i] = fmt.Sprintf("(stat_date >= $%d AND stat_date <= $%d)", n, n+1)
		args = append(args, w.Start, w.End)
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

// buildRangeQuery assembles the date range query and its arguments.
func buildRangeQuery(window statistic.Window, applicationCode string, set statistic.PrecisionSet) (string, []interface{}, error) {
	precisions, precisionArgs, err := precisionClause(set, 4)
	if err != nil {
		return "", nil, err
	}
	query := querySelectPrefix + "stat_date >= $2 AND stat_date <= $3 AND " + precisions + querySelectSuffix
	args := append([]interface{}{applicationCode, window.Start, window.End}, precisionArgs...)
	return query, args, nil
}

// buildComparisonQuery assembles the comparison query over one or two day windows.
func buildComparisonQuery(windows []statistic.Window, applicationCode string, set statistic.PrecisionSet) (string, []interface{}, error) {
	dates, dateArgs := windowClause(windows, 2)
	precisions, precisionArgs, err := precisionClause(set, 2+len(dateArgs))
	if err != nil {
		return "", nil, err
	}
	query := querySelectPrefix + dates + " AND " + precisions + querySelectSuffix
	args := append([]interface{}{applicationCode}, dateArgs...)
	args = append(args, precisionArgs...)
	return query, args, nil
}
