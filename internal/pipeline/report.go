package pipeline

import (
	"strconv"
	"strings"

	"auctionload/internal/formatter"
)

// SourceTable renders the per-source outcomes.
func (r *Report) SourceTable() string {
	rows := make([][]string, 0, len(r.Sources))

	for _, s := range r.Sources {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}

		rows = append(rows, []string{s.Source, s.Status, strconv.Itoa(s.Items), errText})
	}

	return formatter.Table([]string{"Source", "Status", "Items", "Error"}, rows)
}

// RelationTable renders the row count of each relation.
func (r *Report) RelationTable() string {
	rows := make([][]string, 0, len(r.Relations))

	for _, rel := range r.Relations {
		rows = append(rows, []string{rel.Name, strconv.Itoa(rel.Len())})
	}

	return formatter.Table([]string{"Relation", "Rows"}, rows)
}

// Preview renders up to n rows of every relation.
func (r *Report) Preview(n int) string {
	if n <= 0 {
		return ""
	}

	var sb strings.Builder

	for _, rel := range r.Relations {
		rows := rel.Rows
		if len(rows) > n {
			rows = rows[:n]
		}

		sb.WriteString("### " + rel.Name + "\n\n")
		sb.WriteString(formatter.Table(rel.Columns, rows))
		sb.WriteString("\n")
	}

	return sb.String()
}
