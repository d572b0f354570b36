package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-edge/internal/datasource"
)

var slateCmd = &cobra.Command{
	Use:   "slate",
	Short: "Print today's slate",
	Long:  `Fetches the odds feed and prints the games commencing today (UTC), with bookmaker counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		oddsClient := datasource.NewOddsClient(&cfg.OddsAPI, appLogger)
		defer oddsClient.Close()

		games, err := oddsClient.FetchSlate(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch slate: %w", err)
		}

		today := time.Now().UTC()
		count := 0
		for _, game := range games {
			if !game.CommencesOn(today) {
				continue
			}
			count++
			fmt.Printf("%s  %s @ %s  (%d bookmakers)\n",
				game.CommenceTime.UTC().Format("15:04"),
				game.AwayTeam, game.HomeTeam, len(game.Bookmakers))
		}
		if count == 0 {
			fmt.Printf("No games on the %s slate\n", today.Format("2006-01-02"))
		}
		return nil
	},
}
