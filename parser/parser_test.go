package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"google.golang.org/genai"
)

// fakeModels records the request and answers with a canned response.
type fakeModels struct {
	prompt string
	config *genai.GenerateContentConfig
	answer string
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.answer, genai.RoleModel)}},
	}, nil
}

var holdings = []Holding{{ID: "AAPL", Name: "Apple Inc.", Value: investo.M(1234.5)}}

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		answer string
		want   Draft
	}{
		{
			name:   "buy",
			answer: `{"type":"buy","asset":"MSFT","amount":500,"date":"2025-04-15","fraction":null,"sellAll":false,"confidence":0.9}`,
			want:   Draft{Kind: investo.Buy, Asset: "MSFT", Amount: investo.M(500), Date: date.New(2025, 4, 15), Confidence: 0.9},
		},
		{
			name:   "no date",
			answer: `{"type":"buy","asset":"MSFT","amount":500,"sellAll":false,"confidence":0.8}`,
			want:   Draft{Kind: investo.Buy, Asset: "MSFT", Amount: investo.M(500), Confidence: 0.8},
		},
		{
			name:   "half",
			answer: `{"type":"sell","asset":"AAPL","amount":null,"date":null,"fraction":0.5,"sellAll":false,"confidence":0.7}`,
			want:   Draft{Kind: investo.Sell, Asset: "AAPL", Fraction: 0.5, Confidence: 0.7},
		},
		{
			name:   "all",
			answer: `{"type":"sell","asset":"Apple Inc.","amount":617,"sellAll":true,"confidence":1.2}`,
			want:   Draft{Kind: investo.Sell, Asset: "Apple Inc.", SellAll: true, Confidence: 1},
		},
		{
			name:   "whole fraction",
			answer: `{"type":"sell","asset":"AAPL","fraction":1,"sellAll":false,"confidence":0.6}`,
			want:   Draft{Kind: investo.Sell, Asset: "AAPL", SellAll: true, Confidence: 0.6},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			models := &fakeModels{answer: tc.answer}
			got, err := New(models, "test").Parse(context.Background(), "some text", date.New(2025, 10, 15), "USD", holdings)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Kind != tc.want.Kind || got.Asset != tc.want.Asset || !got.Amount.Equal(tc.want.Amount) ||
				got.Date != tc.want.Date || got.Fraction != tc.want.Fraction || got.SellAll != tc.want.SellAll ||
				got.Confidence != tc.want.Confidence {
				t.Errorf("Parse() = %+v want %+v", got, tc.want)
			}
			if got, want := got.Derived(), tc.want.SellAll || tc.want.Fraction > 0; got != want {
				t.Errorf("Derived() = %v want %v", got, want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		answer string
		want   string
	}{
		{"not json", `buy apple`, "invalid answer"},
		{"type", `{"type":"gift","asset":"AAPL","amount":5,"confidence":1}`, "invalid transaction type"},
		{"asset", `{"type":"buy","asset":" ","amount":5,"confidence":1}`, "no asset"},
		{"no amount", `{"type":"buy","asset":"AAPL","confidence":1}`, "no amount"},
		{"buy all", `{"type":"buy","asset":"AAPL","sellAll":true,"confidence":1}`, "no amount"},
		{"negative", `{"type":"buy","asset":"AAPL","amount":-5,"confidence":1}`, "invalid amount"},
		{"fraction", `{"type":"sell","asset":"AAPL","fraction":2,"confidence":1}`, "invalid fraction"},
		{"date", `{"type":"buy","asset":"AAPL","amount":5,"date":"6 months ago","confidence":1}`, "invalid date"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(&fakeModels{answer: tc.answer}, "test").Parse(context.Background(), "text", date.New(2025, 10, 15), "USD", nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse() error = %v want %q", err, tc.want)
			}
		})
	}
}

func TestParse_Request(t *testing.T) {
	models := &fakeModels{answer: `{"type":"buy","asset":"AAPL","amount":5,"confidence":1}`}
	if _, err := New(models, "test").Parse(context.Background(), "bought $5 of apple yesterday", date.New(2025, 10, 15), "EUR", holdings); err != nil {
		t.Fatal(err)
	}
	if models.prompt != "bought $5 of apple yesterday" {
		t.Errorf("prompt = %q", models.prompt)
	}
	if got, want := models.config.ResponseMIMEType, "application/json"; got != want {
		t.Errorf("ResponseMIMEType = %q want %q", got, want)
	}
	if models.config.ResponseSchema == nil || models.config.ResponseSchema.Properties["sellAll"] == nil {
		t.Errorf("ResponseSchema = %+v want the answer schema", models.config.ResponseSchema)
	}
	sys := models.config.SystemInstruction.Parts[0].Text
	for _, want := range []string{"Current date: 2025-10-15", "- AAPL (Apple Inc.): 1234.50", "amount in EUR"} {
		if !strings.Contains(sys, want) {
			t.Errorf("system instruction does not contain %q:\n%s", want, sys)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := New(&fakeModels{err: boom}, "test").Parse(context.Background(), "text", date.Today(), "USD", nil); !errors.Is(err, boom) {
		t.Errorf("Parse() error = %v want %v", err, boom)
	}
	if _, err := New(&fakeModels{answer: " "}, "test").Parse(context.Background(), "text", date.Today(), "USD", nil); !errors.Is(err, ErrNoAnswer) {
		t.Errorf("Parse() error = %v want ErrNoAnswer", err)
	}
	if _, err := New(&fakeModels{}, "test").Parse(context.Background(), "  ", date.Today(), "USD", nil); err == nil {
		t.Error("Parse(empty) succeeded, want error")
	}
}

func TestDraft_Resolve(t *testing.T) {
	testCases := []struct {
		asset   string
		want    string
		wantErr bool
	}{
		{asset: "AAPL", want: "AAPL"},
		{asset: "apple inc.", want: "AAPL"},
		{asset: "msft", want: "MSFT"},
		{asset: "Microsoft Corporation", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Draft{Asset: tc.asset}.Resolve(holdings)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("Resolve(%q) = %q, %v want %q, error %v", tc.asset, got, err, tc.want, tc.wantErr)
		}
	}
}
