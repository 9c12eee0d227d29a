package api

import (
	"html/template"

	"github.com/carlosfiori/conversor-clima/internal/currency"
)

var pageTemplate = template.Must(template.New("currency").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Conversor de Moedas</title>
</head>
<body>
<h1>Conversor de Moedas</h1>
<form method="post" action="/convert">
  <input type="number" step="any" name="amount" value="{{.Amount}}" placeholder="Enter an amount">
  <select name="from">{{range .Codes}}<option value="{{.}}"{{if eq . $.From}} selected{{end}}>{{.}}</option>{{end}}</select>
  <select name="to">{{range .Codes}}<option value="{{.}}"{{if eq . $.To}} selected{{end}}>{{.}}</option>{{end}}</select>
  <button type="submit">Convert</button>
</form>
{{if .State.Loading}}<p>Loading...</p>{{end}}
{{if .State.Error}}<p style="color: red">{{.State.Error}}</p>{{end}}
{{with .State.Result}}<p>{{.Text}}</p>{{end}}
</body>
</html>
`))

type pageData struct {
	Amount string
	From   currency.Code
	To     currency.Code
	Codes  []currency.Code
	State  StateResponse
}

// newPageData fills the inputs with the last submitted form. Codes that do
// not parse fall back to the defaults.
func newPageData(f currency.Form, s currency.State) pageData {
	data := pageData{
		Amount: f.Amount,
		From:   currency.DefaultFrom,
		To:     currency.DefaultTo,
		Codes:  currency.Supported,
		State:  newStateResponse(s),
	}
	if code, err := currency.ParseCode(f.From); err == nil {
		data.From = code
	}
	if code, err := currency.ParseCode(f.To); err == nil {
		data.To = code
	}
	return data
}
