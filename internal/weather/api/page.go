package api

import "html/template"

var pageTemplate = template.Must(template.New("weather").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Clima</title>
<style>
  body { font-family: sans-serif; background: #87ceeb; }
  body.night { background: #1c2541; color: #fff; }
  body.rain { background: #5c6b7a; color: #fff; }
  body.cloudy { background: #b0b8c1; }
  body.snow { background: #eef3f7; }
  body.clear { background: #ffd56b; }
</style>
</head>
<body class="{{.View.Background}}">
<h1>Clima</h1>
<form method="get" action="/">
  <input type="text" name="city" value="{{.View.Query}}" placeholder="Enter a city">
  <button type="submit">Search</button>
</form>
{{if .View.Loading}}<p>Loading...</p>{{end}}
{{if .View.Error}}<p style="color: red">{{.View.Error}}</p>{{end}}
{{if .View.City}}
<section>
  <h2>{{.View.City}}, {{.View.Country}}</h2>
  <img src="{{.View.IconURL}}" alt="{{.View.Description}}">
  <p>{{.View.Temperature}}</p>
  <p>{{.View.Description}}</p>
  <p>Humidity: {{.View.Humidity}}%</p>
</section>
{{end}}
</body>
</html>
`))
