package dataset

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Split filters the table to the relevant teams and partitions the remainder
// into train and test subsets. The random source is injected so evaluation
// metrics are reproducible under a fixed seed; production callers pass a
// time-seeded source.
func Split(table *Table, relevantTeamIDs map[int]struct{}, testFraction float64, rng *rand.Rand) (train, test *Table, err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v out of range [0,1)", testFraction)
	}

	var positions []int
	for i, id := range table.TeamIDs() {
		if _, ok := relevantTeamIDs[id]; ok {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return nil, nil, fmt.Errorf("no rows for today's teams: %w", models.ErrEmptyDataset)
	}

	shuffled := make([]int, len(positions))
	copy(shuffled, positions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled)) * testFraction)
	if nTest >= len(shuffled) {
		nTest = len(shuffled) - 1
	}

	test = table.subset(shuffled[:nTest])
	train = table.subset(shuffled[nTest:])
	if train.Len() == 0 {
		return nil, nil, fmt.Errorf("training split has no rows: %w", models.ErrEmptyDataset)
	}
	return train, test, nil
}
