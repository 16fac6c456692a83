package document

import (
	"html"
	"text/template"
)

// Los valores se escapan explícitamente con esc (html.EscapeString), que deja intactos
// caracteres como "+" en teléfonos.
var funcs = template.FuncMap{"esc": html.EscapeString}

func parse(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(src))
}

// baseCSS estilos en línea del documento. Las reglas page-break-* evitan cortar filas,
// el resumen y las firmas entre páginas.
const baseCSS = `
body {
  font-family: 'Inter', sans-serif;
  margin: 0;
  padding: 0;
  color: #333;
  font-size: 12px;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
.container { max-width: 800px; margin: 0 auto; padding: 20px; }
.header {
  display: flex;
  justify-content: space-between;
  margin-bottom: 40px;
  padding-bottom: 20px;
  border-bottom: 1px solid #eaeaea;
}
.company-info h1 { color: #4f46e5; margin: 0 0 5px 0; font-size: 24px; }
.company-info p { margin: 2px 0; color: #666; }
.quotation-info { text-align: right; }
.quotation-info h2 { color: #4f46e5; margin: 0 0 10px 0; font-size: 18px; }
.quotation-info p { margin: 2px 0; }
.client-info { margin-bottom: 30px; }
.client-info h3, .terms h3 { color: #4f46e5; margin: 0 0 10px 0; font-size: 16px; }
.client-info p { margin: 2px 0; }
table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
thead { display: table-header-group; }
tr { page-break-inside: avoid; }
th {
  background-color: #f9fafb;
  text-align: left;
  padding: 10px;
  font-weight: 600;
  border-bottom: 2px solid #eaeaea;
}
td { padding: 10px; border-bottom: 1px solid #eaeaea; }
.item-name { font-weight: 500; }
.item-description { color: #666; font-size: 11px; }
.text-right { text-align: right; }
.summary { margin-left: auto; width: 300px; page-break-inside: avoid; }
.summary-row { display: flex; justify-content: space-between; padding: 5px 0; }
.summary-row.total {
  font-weight: 700;
  font-size: 14px;
  border-top: 2px solid #eaeaea;
  padding-top: 10px;
  margin-top: 5px;
}
.terms { margin-top: 40px; padding-top: 20px; border-top: 1px solid #eaeaea; page-break-inside: avoid; }
.signature { margin-top: 60px; display: flex; justify-content: space-between; page-break-inside: avoid; }
.signature-box { width: 40%; }
.signature-line { border-top: 1px solid #333; margin-top: 70px; padding-top: 5px; }
`

var pageTmpl = parse("page", `<!DOCTYPE html>
<html lang="{{esc .Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{esc .Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div class="container">
{{.Body}}</div>
</body>
</html>
`)

var headerTmpl = parse("header", `<div class="header">
<div class="company-info">
<h1>{{esc .IssuerName}}</h1>
{{range .IssuerLines}}<p>{{if .Label}}{{esc .Label}}: {{end}}{{esc .Value}}</p>
{{end}}</div>
<div class="quotation-info">
<h2>{{esc .Title}}</h2>
{{range .Meta}}<p><strong>{{esc .Label}}:</strong> {{esc .Value}}</p>
{{end}}</div>
</div>
`)

var clientTmpl = parse("client", `<div class="client-info">
<h3>{{esc .Heading}}</h3>
{{range .Fields}}<p><strong>{{esc .Label}}:</strong> {{esc .Value}}</p>
{{end}}</div>
`)

var itemsTmpl = parse("items", `<table>
<thead>
<tr>
<th width="5%">{{esc (index .Columns 0)}}</th>
<th width="40%">{{esc (index .Columns 1)}}</th>
<th width="15%">{{esc (index .Columns 2)}}</th>
<th width="20%">{{esc (index .Columns 3)}}</th>
<th width="20%" class="text-right">{{esc (index .Columns 4)}}</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Position}}</td>
<td>
<div class="item-name">{{esc .Name}}</div>
{{if .Description}}<div class="item-description">{{esc .Description}}</div>
{{end}}</td>
<td>{{esc .Quantity}}</td>
<td>{{esc .Rate}}</td>
<td class="text-right">{{esc .Amount}}</td>
</tr>
{{end}}</tbody>
</table>
`)

var summaryTmpl = parse("summary", `<div class="summary">
{{range .Rows}}<div class="summary-row">
<div>{{esc .Label}}:</div>
<div>{{esc .Value}}</div>
</div>
{{end}}<div class="summary-row total">
<div>{{esc .Total.Label}}:</div>
<div>{{esc .Total.Value}}</div>
</div>
</div>
`)

var termsTmpl = parse("terms", `<div class="terms">
<h3>{{esc .Heading}}</h3>
{{range .Paragraphs}}<p>{{esc .}}</p>
{{end}}</div>
`)

var warrantyTmpl = parse("warranty", `<div class="terms">
<h3>{{esc .Heading}}</h3>
{{range .Fields}}<p><strong>{{esc .Label}}:</strong> {{esc .Value}}</p>
{{end}}</div>
`)

var signatureTmpl = parse("signature", `<div class="signature">
<div class="signature-box">
<div class="signature-line">{{esc .IssuerLabel}}</div>
</div>
<div class="signature-box">
<div class="signature-line">{{esc .ClientLabel}}</div>
</div>
</div>
`)
