package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/teams"
)

// SourceRow is one team's row from a single stat source, keyed by whatever
// naming scheme that source uses. Numeric holds parsed metrics; Text holds
// columns that need derivation (win/loss records like "92-70").
type SourceRow struct {
	Team    string
	Numeric map[string]float64
	Text    map[string]string
}

// SourceTable is one stat source (batting, pitching, fielding or standings)
// before normalization. Name becomes the column prefix for that source.
type SourceTable struct {
	Name   string
	Scheme teams.NamingScheme
	Rows   []SourceRow
}

// Builder merges the four stat sources into one row-per-team feature table.
// All name resolution goes through the shared canonical lookup.
type Builder struct {
	lookup *teams.Lookup
	logger *logrus.Logger
}

// NewBuilder creates a feature table builder.
func NewBuilder(lookup *teams.Lookup, logger *logrus.Logger) *Builder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{lookup: lookup, logger: logger}
}

// Build normalizes every source to team ids, prefixes its columns, and inner
// joins the sources on team id. Teams missing from any source are excluded;
// an empty join is a fatal precondition failure.
func (b *Builder) Build(batting, pitching, fielding, standings SourceTable) (*Table, error) {
	sources := []SourceTable{batting, pitching, fielding, standings}

	normalized := make([]map[int]map[string]float64, len(sources))
	for i, src := range sources {
		n, err := b.normalize(src)
		if err != nil {
			return nil, err
		}
		normalized[i] = n
	}

	table := NewTable()
	// The first source's row order drives join output order so that the
	// result is deterministic for identical inputs.
	for _, row := range sources[0].Rows {
		id, ok := b.lookup.Resolve(sources[0].Scheme, row.Team)
		if !ok {
			continue
		}
		values, complete := joinRow(id, normalized)
		if !complete {
			b.logger.WithFields(logrus.Fields{"team_id": id}).Debug("Team missing from a stat source, excluded from join")
			continue
		}
		if err := table.Append(&Record{TeamID: id, Values: values}); err != nil {
			return nil, err
		}
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("joined stat sources: %w", models.ErrEmptyDataset)
	}
	return table, nil
}

// normalize resolves a source's team names to ids and prefixes its columns.
func (b *Builder) normalize(src SourceTable) (map[int]map[string]float64, error) {
	out := make(map[int]map[string]float64, len(src.Rows))
	for _, row := range src.Rows {
		id, ok := b.lookup.Resolve(src.Scheme, row.Team)
		if !ok {
			b.logger.WithFields(logrus.Fields{"source": src.Name, "team": row.Team}).Warn("Unresolvable team name in stat source")
			continue
		}
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("duplicate team %q in %s table", row.Team, src.Name)
		}

		values := make(map[string]float64, len(row.Numeric)+len(row.Text))
		for col, v := range row.Numeric {
			values[src.Name+"_"+col] = v
		}
		for col, s := range row.Text {
			ratio, err := ParseWinLossRecord(s)
			if err != nil {
				return nil, fmt.Errorf("source %s, team %q, column %q: %w", src.Name, row.Team, col, err)
			}
			values[src.Name+"_"+col+"%"] = ratio
		}
		out[id] = values
	}
	return out, nil
}

// ParseWinLossRecord converts a "W-L" record string to wins/(wins+losses),
// defined as 0 when the team has not played.
func ParseWinLossRecord(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed win/loss record %q", s)
	}
	wins, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed win/loss record %q", s)
	}
	losses, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed win/loss record %q", s)
	}
	if wins+losses == 0 {
		return 0, nil
	}
	return wins / (wins + losses), nil
}

func joinRow(id int, normalized []map[int]map[string]float64) (map[string]float64, bool) {
	values := make(map[string]float64)
	for _, source := range normalized {
		row, ok := source[id]
		if !ok {
			return nil, false
		}
		for col, v := range row {
			values[col] = v
		}
	}
	return values, true
}
