package currency

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

type State = fetch.State[ConversionResult]

// Converter is the fetch controller of the currency widget.
type Converter struct {
	rates RatesClient
	ctrl  *fetch.Controller[Form, ConversionResult]

	mu   sync.RWMutex
	form Form
}

func NewConverter(rates RatesClient, logger *zap.Logger) *Converter {
	c := &Converter{rates: rates}
	c.ctrl = fetch.New("currency", c.convert,
		fetch.WithValidator[Form, ConversionResult](func(f Form) error {
			_, err := ParseRequest(f)
			return err
		}),
		fetch.WithLogger[Form, ConversionResult](logger),
	)
	return c
}

// Submit validates f and, when valid, fetches the rate table and converts.
func (c *Converter) Submit(ctx context.Context, f Form) State {
	c.mu.Lock()
	c.form = f
	c.mu.Unlock()
	return c.ctrl.Execute(ctx, f)
}

// Form is the last submitted input, kept whether or not it was valid.
func (c *Converter) Form() Form {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form
}

func (c *Converter) State() State {
	return c.ctrl.Snapshot()
}

func (c *Converter) convert(ctx context.Context, f Form) (ConversionResult, error) {
	req, err := ParseRequest(f)
	if err != nil {
		return ConversionResult{}, err
	}

	table, err := c.rates.LatestRates(ctx, req.From)
	if err != nil {
		return ConversionResult{}, err
	}

	rate, err := table.Rate(req.To)
	if err != nil {
		return ConversionResult{}, err
	}

	return ConversionResult{
		Request:   req,
		Rate:      rate,
		Converted: Convert(req.Amount, rate),
	}, nil
}
