// Package report renders finalized recommendations for delivery. The core
// hands it a list of finalized games plus evaluation metrics; everything here
// is presentation.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
)

// FormatRecommendation renders one pick for terminal output.
func FormatRecommendation(rec *models.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team: %s\n", rec.TeamName)
	fmt.Fprintf(&b, "Bookmaker: %s\n", rec.Bookmaker)
	fmt.Fprintf(&b, "Price: %+d\n", rec.BestPrice)
	fmt.Fprintf(&b, "Predicted Win Percentage: %.2f%%\n", rec.PredictedValue*100)
	fmt.Fprintf(&b, "Expected Profit: $%s for every $100 bet\n", profitPer100(rec))
	b.WriteString("-----------------------------------------\n")
	return b.String()
}

// profitPer100 formats the expected profit on a $100 stake with money
// precision rather than float formatting.
func profitPer100(rec *models.Recommendation) string {
	return decimal.NewFromFloat(rec.ExpectedProfit).Round(2).StringFixed(2)
}

const emailTemplate = `<html>
<head>
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f6f6f6; padding: 20px; margin: 0; }
  .container { max-width: 600px; margin: auto; background-color: #fff; border-radius: 10px; overflow: hidden; }
  .header { background-color: #2E7D32; color: #fff; padding: 20px; text-align: center; font-size: 28px; }
  .date { text-align: center; font-size: 18px; color: #2E7D32; padding: 10px; background-color: #E8F5E9; }
  .game { padding: 20px; border-bottom: 1px solid #ECEFF1; }
  .game:last-child { border-bottom: 0; }
  h2 { margin-top: 0; font-size: 22px; color: #333; }
  .start-time { font-size: 16px; color: #555; font-style: italic; }
  .recommendation { font-size: 18px; color: #008000; }
  .footer { padding: 15px 20px; font-size: 13px; color: #777; background-color: #FAFAFA; }
</style>
</head>
<body>
<div class="container">
  <div class="header">Today's Picks</div>
  <div class="date">{{.Date}}</div>
  {{range .Games}}
  <div class="game">
    <h2>{{.AwayTeam}} @ {{.HomeTeam}}</h2>
    <div class="start-time">First pitch: {{.StartTime}}</div>
    <div class="recommendation">
      Bet <strong>{{.Team}}</strong> at <strong>{{.Price}}</strong> ({{.Bookmaker}})<br>
      Predicted win: {{.PredictedPct}} &middot; Expected profit: ${{.Profit}} per $100
    </div>
  </div>
  {{end}}
  <div class="footer">
    Model evaluation &mdash; MAE: {{printf "%.4f" .Metrics.MAE}},
    MSE: {{printf "%.4f" .Metrics.MSE}},
    R&sup2;: {{printf "%.4f" .Metrics.R2}}
    {{if .TopFeatures}}<br>Most influential features: {{.TopFeatures}}{{end}}
  </div>
</div>
</body>
</html>`

type emailGame struct {
	HomeTeam     string
	AwayTeam     string
	StartTime    string
	Team         string
	Price        string
	Bookmaker    string
	PredictedPct string
	Profit       string
}

type emailData struct {
	Date        string
	Games       []emailGame
	Metrics     models.EvalMetrics
	TopFeatures string
}

// BuildEmail renders the HTML report for the day's finalized games, with the
// evaluation metrics and top permutation importances in the footer.
func BuildEmail(games []*models.FinalizedGame, metrics models.EvalMetrics, importance []ml.FeatureImportance, date time.Time) (string, error) {
	data := emailData{
		Date:        date.UTC().Format("Monday, January 2, 2006"),
		Metrics:     metrics,
		TopFeatures: topFeatures(importance, 3),
	}
	for _, g := range games {
		if g.Recommendation == nil {
			continue
		}
		rec := g.Recommendation
		data.Games = append(data.Games, emailGame{
			HomeTeam:     g.HomeTeam,
			AwayTeam:     g.AwayTeam,
			StartTime:    g.CommenceTime.UTC().Format("3:04 PM MST"),
			Team:         rec.TeamName,
			Price:        fmt.Sprintf("%+d", rec.BestPrice),
			Bookmaker:    rec.Bookmaker,
			PredictedPct: fmt.Sprintf("%.2f%%", rec.PredictedValue*100),
			Profit:       profitPer100(rec),
		})
	}

	tmpl, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return b.String(), nil
}

func topFeatures(importance []ml.FeatureImportance, n int) string {
	if len(importance) == 0 {
		return ""
	}
	if n > len(importance) {
		n = len(importance)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = importance[i].Name
	}
	return strings.Join(names, ", ")
}
