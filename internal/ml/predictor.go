package ml

import (
	"github.com/yourusername/diamond-edge/internal/dataset"
)

// PredictTeam looks up the team's row in the feature table and applies the
// model to it. A missing row (team unknown to the trained feature set) is a
// normal outcome reported as ok == false; callers skip the team rather than
// treating it as an error. The feature table is never mutated.
func PredictTeam(model *Model, teamID int, table *dataset.Table) (float64, bool) {
	row, ok := table.Row(teamID)
	if !ok {
		return 0, false
	}
	return model.PredictValues(row.Values)
}
