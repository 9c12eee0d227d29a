package api

import "github.com/carlosfiori/conversor-clima/internal/currency"

type ConvertRequest = currency.Form

type ConversionResponse struct {
	Amount    string `json:"amount"`
	From      string `json:"from"`
	To        string `json:"to"`
	Rate      string `json:"rate"`
	Converted string `json:"converted"`
	Text      string `json:"text"`
}

type StateResponse struct {
	Status  string              `json:"status"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error,omitempty"`
	Result  *ConversionResponse `json:"result,omitempty"`
}

func newConversionResponse(r currency.ConversionResult) *ConversionResponse {
	return &ConversionResponse{
		Amount:    r.Request.Amount.String(),
		From:      string(r.Request.From),
		To:        string(r.Request.To),
		Rate:      r.Rate.String(),
		Converted: r.Converted.StringFixed(2),
		Text:      currency.Render(r),
	}
}

func newStateResponse(s currency.State) StateResponse {
	resp := StateResponse{
		Status:  s.Status.String(),
		Loading: s.Loading,
		Error:   s.Error,
	}
	if s.Result != nil {
		resp.Result = newConversionResponse(*s.Result)
	}
	return resp
}
