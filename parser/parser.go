// Package parser reads buy and sell transactions written in plain English,
// like "sold half of my Apple shares last week", with Gemini.
//
// The model answers with a JSON document constrained by a response schema.
// Amounts of sales given as a fraction of a position, or the whole of it, are
// left to the caller, which knows the position.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/etnz/investo/insight"
	"github.com/etnz/investo/logging"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// ErrNoAnswer is returned when the model answers with no text.
var ErrNoAnswer = errors.New("no transaction parsed")

const (
	temperature = 0.1
	maxTokens   = 200
)

// Holding is a position of the portfolio, given to the model so that it can
// resolve names like "my Apple shares" to a ticker.
type Holding struct {
	ID    string
	Name  string
	Value investo.Money
}

// Draft is a parsed transaction, still to be completed by the caller.
type Draft struct {
	Kind       investo.Kind  // Buy or Sell.
	Asset      string        // ticker or name, as understood by the model.
	Amount     investo.Money // zero when not stated.
	Date       date.Date     // zero when not stated.
	Fraction   float64       // fraction of the position to sell, 0 when not stated.
	SellAll    bool
	Confidence float64 // between 0 and 1.
}

// Derived reports whether the amount is to be computed from the position.
func (d Draft) Derived() bool { return d.SellAll || d.Fraction > 0 }

// Resolve returns the instrument id of the asset: the id of the holding it
// names, or the asset itself as a ticker.
func (d Draft) Resolve(holdings []Holding) (string, error) {
	asset := strings.TrimSpace(d.Asset)
	for _, h := range holdings {
		if strings.EqualFold(asset, h.ID) || strings.EqualFold(asset, h.Name) {
			return h.ID, nil
		}
	}
	if asset == "" || strings.ContainsAny(asset, " \t") {
		return "", fmt.Errorf("cannot resolve %q to a ticker, use 'inv search' to find it", d.Asset)
	}
	return strings.ToUpper(asset), nil
}

// answer is the JSON document the model is asked for.
type answer struct {
	Type       string   `json:"type"`
	Asset      string   `json:"asset"`
	Amount     *float64 `json:"amount"`
	Date       *string  `json:"date"`
	Fraction   *float64 `json:"fraction"`
	SellAll    bool     `json:"sellAll"`
	Confidence float64  `json:"confidence"`
}

// schema constrains the model's answer to the answer document.
var schema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":       {Type: genai.TypeString, Enum: []string{"buy", "sell"}},
		"asset":      {Type: genai.TypeString, Description: "ticker, or company name when the ticker is unknown"},
		"amount":     {Type: genai.TypeNumber, Nullable: genai.Ptr(true), Description: "amount in the portfolio currency"},
		"date":       {Type: genai.TypeString, Nullable: genai.Ptr(true), Description: "YYYY-MM-DD"},
		"fraction":   {Type: genai.TypeNumber, Nullable: genai.Ptr(true), Description: "fraction of the position to sell, between 0 and 1"},
		"sellAll":    {Type: genai.TypeBoolean},
		"confidence": {Type: genai.TypeNumber, Description: "parsing certainty between 0 and 1"},
	},
	Required: []string{"type", "asset", "sellAll", "confidence"},
}

// instructionText is the system instruction template.
const instructionText = `You are a financial transaction parser. Parse natural language into structured transaction data.

Current date: {{.Today}}
{{- if .Holdings}}

User's current portfolio:
{{range .Holdings}}- {{.ID}} ({{.Name}}){{if .Value.IsPositive}}: {{money .Value}}{{end}}
{{end}}{{end}}
Rules:
- Extract the transaction type (buy or sell).
- Identify the asset; use the ticker of the portfolio when the text names one of its assets.
- Extract the amount in {{.Currency}} if specified.
- Parse dates, absolute like "1/15/2025" or relative like "6 months ago", "yesterday", "last week", into YYYY-MM-DD.
- Handle fractions: "half" = 0.5, "quarter" = 0.25, "third" = 0.333, "all" = sellAll true.
- Leave the amount null for sales given as a fraction or as all of a position.
- Return a confidence score between 0 and 1 based on parsing certainty.`

var instruction = template.Must(template.New("instruction").Funcs(template.FuncMap{
	"money": func(m investo.Money) string { return m.Round().String() },
}).Parse(instructionText))

// Instruction returns the system instruction for the given date, currency and portfolio.
func Instruction(today date.Date, currency string, holdings []Holding) (string, error) {
	var b bytes.Buffer
	err := instruction.Execute(&b, struct {
		Today    date.Date
		Currency string
		Holdings []Holding
	}{today, currency, holdings})
	if err != nil {
		return "", fmt.Errorf("cannot build instruction: %w", err)
	}
	return b.String(), nil
}

// Parser parses transactions with a Gemini model.
type Parser struct {
	models insight.Models
	model  string
	log    *logrus.Entry
}

// New returns a parser using the given model name.
func New(models insight.Models, model string) *Parser {
	return &Parser{models: models, model: model, log: logging.Component("parser")}
}

// Parse reads a single transaction from text.
func (p *Parser) Parse(ctx context.Context, text string, today date.Date, currency string, holdings []Holding) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, errors.New("nothing to parse")
	}
	sys, err := Instruction(today, currency, holdings)
	if err != nil {
		return Draft{}, err
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(sys, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxTokens,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}
	p.log.WithFields(logrus.Fields{"model": p.model, "holdings": len(holdings)}).Debug("parse transaction")
	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(text), cfg)
	if err != nil {
		return Draft{}, fmt.Errorf("cannot parse transaction with %s: %w", p.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || strings.TrimSpace(resp.Text()) == "" {
		return Draft{}, ErrNoAnswer
	}
	return decode(resp.Text())
}

// decode validates the model's answer.
func decode(text string) (Draft, error) {
	var a answer
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Draft{}, fmt.Errorf("invalid answer %q: %w", text, err)
	}
	var d Draft
	switch a.Type {
	case "buy":
		d.Kind = investo.Buy
	case "sell":
		d.Kind = investo.Sell
	default:
		return Draft{}, fmt.Errorf("invalid transaction type %q", a.Type)
	}
	d.Asset = strings.TrimSpace(a.Asset)
	if d.Asset == "" {
		return Draft{}, errors.New("no asset in the answer")
	}
	d.Confidence = min(max(a.Confidence, 0), 1)

	if a.Amount != nil && *a.Amount != 0 {
		if *a.Amount < 0 {
			return Draft{}, fmt.Errorf("invalid amount %v", *a.Amount)
		}
		d.Amount = investo.M(*a.Amount)
	}
	if a.Date != nil && *a.Date != "" {
		on, err := date.Parse(*a.Date)
		if err != nil {
			return Draft{}, fmt.Errorf("invalid date in the answer: %w", err)
		}
		d.Date = on
	}
	if d.Kind == investo.Sell {
		d.SellAll = a.SellAll
		if a.Fraction != nil && *a.Fraction != 0 {
			if *a.Fraction < 0 || *a.Fraction > 1 {
				return Draft{}, fmt.Errorf("invalid fraction %v", *a.Fraction)
			}
			d.Fraction = *a.Fraction
		}
		if d.Fraction == 1 {
			d.SellAll, d.Fraction = true, 0
		}
		if d.SellAll {
			d.Fraction = 0
		}
	}
	switch {
	case d.Derived():
		d.Amount = investo.Money{} // computed from the position.
	case !d.Amount.IsPositive():
		return Draft{}, fmt.Errorf("no amount for the %s of %s", d.Kind, d.Asset)
	}
	return d, nil
}
