package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/investo"
	"google.golang.org/genai"
)

// fakeModels records the request and answers with a canned response.
type fakeModels struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	return f.resp, f.err
}

func answer(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func summary() investo.Summary {
	apple := investo.Stat{Instrument: "AAPL", Name: "Apple", FinalValue: investo.M(1200), Deposits: investo.M(1000), TotalReturn: 0.2}
	return investo.Summary{
		Assets:        []investo.Stat{apple},
		NetWorth:      investo.M(4200),
		StockValue:    investo.M(1200),
		StockInvested: investo.M(1000),
		StockReturn:   investo.M(200),
		CashBalance:   investo.M(3000),
		CashDeposited: investo.M(3000),
	}
}

func TestPrompt(t *testing.T) {
	got, err := Prompt(summary(), "USD")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	wants := []string{
		"NET WORTH ($4,200.00)",
		"asset allocation (71% cash, 29% stocks)",
		"Current Balance $3,000.00; the largest portion of net worth",
		"Apple:\n[One concise sentence",
		"- Stock Return: +$200.00 (+20.0%)",
		"- Apple (AAPL): +$200.00 gain/loss (+20.0%), Current Value $1,200.00",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("Prompt() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Withdrawn") || strings.Contains(got, "Sold:") {
		t.Errorf("Prompt() mentions withdrawals that did not happen:\n%s", got)
	}
}

func TestPrompt_CashOnly(t *testing.T) {
	s := investo.Summary{NetWorth: investo.M(100), CashBalance: investo.M(100), CashDeposited: investo.M(150), CashWithdrawn: investo.M(50)}
	got, err := Prompt(s, "EUR")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if strings.Contains(got, "Individual Stocks") {
		t.Errorf("Prompt() lists stocks for a cash only portfolio:\n%s", got)
	}
	if !strings.Contains(got, "Total Deposited: €150.00, Withdrawn: €50.00") {
		t.Errorf("Prompt() does not describe cash flows:\n%s", got)
	}
}

func TestInsights(t *testing.T) {
	testCases := []struct {
		name    string
		fake    *fakeModels
		want    string
		wantErr error
	}{
		{"answer", &fakeModels{resp: answer("  Overview:\nAll good.\n")}, "Overview:\nAll good.", nil},
		{"empty", &fakeModels{resp: answer(" ")}, "", ErrNoInsights},
		{"no candidate", &fakeModels{resp: &genai.GenerateContentResponse{}}, "", ErrNoInsights},
		{"failure", &fakeModels{err: errors.New("quota exceeded")}, "", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAdvisor(tc.fake, "gemini-test", 0.5, 200)
			got, err := a.Insights(context.Background(), summary(), "USD")
			if tc.fake.err != nil {
				if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
					t.Errorf("Insights() error = %v want the model error", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Insights() error = %v want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Insights() = %q want %q", got, tc.want)
			}
			if tc.fake.model != "gemini-test" {
				t.Errorf("model = %q want gemini-test", tc.fake.model)
			}
			if !strings.Contains(tc.fake.prompt, "Apple (AAPL)") {
				t.Errorf("prompt does not describe the assets: %q", tc.fake.prompt)
			}
			if tc.fake.config.MaxOutputTokens != 200 || *tc.fake.config.Temperature != 0.5 {
				t.Errorf("config = %+v", tc.fake.config)
			}
		})
	}
}
