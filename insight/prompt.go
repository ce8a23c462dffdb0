package insight

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/investo"
)

// promptText is the user prompt template, executed over promptData.
const promptText = `You are a financial advisor analyzing a personal investment portfolio. Provide insights formatted EXACTLY as follows:

Overview:
[One sentence about overall financial position. Focus on NET WORTH ({{money .NetWorth}}), asset allocation ({{pct .CashShare}} cash, {{pct .StockShare}} stocks), and financial health. A large cash position is a STRENGTH providing stability and optionality.]
{{if .HasCash}}
Bank Account:
Current Balance {{money .CashBalance}}; {{if .CashLeads}}the largest portion of net worth, providing strong financial stability and dry powder for future opportunities{{else}}providing a cash buffer alongside investments{{end}}.
{{end}}{{range .Assets}}
{{.Name}}:
[One concise sentence about this stock's performance]
{{end}}
IMPORTANT GUIDELINES:
- Assess OVERALL FINANCIAL HEALTH, not just stock performance. A portfolio with substantial cash is financially strong even if stocks are down.
- Cash/bank balance is a STRENGTH: it provides stability, reduces risk, and offers optionality to buy during dips.
- If stocks are down but the overall net worth is high due to cash reserves, the portfolio is in a GOOD position.
- Judge stock performance by AMOUNTS, not percentages.
- Be balanced and constructive. Do NOT catastrophize stock losses if they are a small portion of net worth.

Portfolio Data:
- Net Worth: {{money .NetWorth}}
- Cash/Bank Balance: {{money .CashBalance}} ({{pct .CashShare}} of net worth){{if .CashWithdrawn.IsPositive}}
- Total Deposited: {{money .CashDeposited}}, Withdrawn: {{money .CashWithdrawn}}{{end}}
{{- if .Assets}}
- Stocks Current Value: {{money .StockValue}} ({{pct .StockShare}} of net worth)
- Total Invested in Stocks: {{money .StockInvested}}{{if .StockSold.IsPositive}}, Sold: {{money .StockSold}}{{end}}
- Stock Return: {{signed .StockReturn}} ({{spct .StockReturnRatio}})

Individual Stocks:
{{range .Assets}}- {{.Name}} ({{.Instrument}}): {{signed .Gain}} gain/loss ({{spct .TotalReturn}}), Current Value {{money .FinalValue}}
{{end}}{{end}}`

// promptData is the summary with the derived figures the prompt needs.
type promptData struct {
	investo.Summary
	StockShare       investo.Ratio
	StockReturnRatio investo.Ratio
	HasCash          bool
	CashLeads        bool
}

// Prompt returns the user prompt describing the summary.
func Prompt(s investo.Summary, currency string) (string, error) {
	d := promptData{
		Summary:   s,
		HasCash:   s.CashBalance.IsPositive() || s.CashDeposited.IsPositive(),
		CashLeads: s.CashBalance.GreaterThan(s.StockValue),
	}
	if s.NetWorth.IsPositive() {
		d.StockShare = investo.Ratio(s.StockValue.Ratio(s.NetWorth))
	}
	if s.StockInvested.IsPositive() {
		d.StockReturnRatio = investo.Ratio(s.StockReturn.Ratio(s.StockInvested))
	}

	t, err := template.New("prompt").Funcs(funcs(currency)).Parse(promptText)
	if err != nil {
		return "", fmt.Errorf("cannot parse insights prompt: %w", err)
	}
	var b strings.Builder
	if err := t.Execute(&b, d); err != nil {
		return "", fmt.Errorf("cannot build insights prompt: %w", err)
	}
	return b.String(), nil
}

// funcs returns the template functions formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money":  func(m investo.Money) string { return m.Format(currency) },
		"signed": func(m investo.Money) string { return m.SignedString(currency) },
		"pct":    func(r investo.Ratio) string { return fmt.Sprintf("%.0f%%", r.Percent()) },
		"spct":   func(r investo.Ratio) string { return fmt.Sprintf("%+.1f%%", r.Percent()) },
	}
}
