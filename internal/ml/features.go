package ml

// DefaultTarget is the regression target: the win/loss ratio derived from the
// standings record.
const DefaultTarget = "stand_W-L%"

// DefaultFeatureNames is the full feature set the model trains on, prefixed by
// stat source. Order is fixed; a trained model is bound to the order used at
// fit time.
var DefaultFeatureNames = []string{
	// Batting
	"bat_G", "bat_AB", "bat_PA", "bat_H", "bat_1B", "bat_2B",
	"bat_3B", "bat_HR", "bat_R", "bat_RBI", "bat_BB", "bat_SO",
	"bat_AVG", "bat_wOBA", "bat_wRAA", "bat_wRC", "bat_WAR",
	"bat_OBP", "bat_SLG", "bat_ISO", "bat_Clutch", "bat_Swing%",
	"bat_Contact%", "bat_Zone%", "bat_F-Strike%", "bat_Pull%",

	// Pitching
	"pit_W", "pit_L", "pit_ERA", "pit_G", "pit_GS", "pit_SV",
	"pit_IP", "pit_H", "pit_R", "pit_ER", "pit_HR", "pit_BB",
	"pit_SO", "pit_WHIP", "pit_FIP", "pit_xFIP", "pit_WAR",
	"pit_K/BB",

	// Fielding
	"field_G", "field_GS", "field_Inn", "field_PO", "field_A",
	"field_E", "field_DP", "field_DRS", "field_UZR",

	// Standings
	"stand_W", "stand_L", "stand_W-L%",
}

// DefaultSearchSpace is the hyperparameter grid searched when the caller does
// not supply one. Trimmed from the full sweep so a daily run stays fast.
func DefaultSearchSpace() *SearchSpace {
	return &SearchSpace{
		NumTrees:        []int{100, 200},
		MaxFeatures:     []string{"sqrt", "log2"},
		MaxDepth:        []int{30, 0},
		MinSamplesSplit: []int{2, 5},
		MinSamplesLeaf:  []int{1, 2},
		Bootstrap:       []bool{true},
	}
}
