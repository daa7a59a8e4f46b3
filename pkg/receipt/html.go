package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
)

var a4Template = template.Must(template.New("receipt_a4").Funcs(template.FuncMap{
	"brl": FormatBRL,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Recibo {{.ReceiptNo}}</title>
<style>
  @page { size: A4; margin: 20mm; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #222; }
  header { text-align: center; border-bottom: 2px solid #222; padding-bottom: 12px; }
  header h1 { margin: 0; font-size: 22px; }
  header p { margin: 2px 0; font-size: 12px; color: #555; }
  .meta { margin: 16px 0; font-size: 13px; }
  .meta span { display: inline-block; margin-right: 24px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: left; border-bottom: 1px solid #999; padding: 6px 4px; }
  td { padding: 6px 4px; border-bottom: 1px solid #eee; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; font-size: 13px; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 0; }
  .totals .grand { font-weight: bold; font-size: 16px; border-top: 2px solid #222; padding-top: 6px; }
  footer { margin-top: 32px; text-align: center; font-size: 12px; color: #777; }
</style>
</head>
<body>
<header>
  <h1>{{.Header.StoreName}}</h1>
  {{if .Header.Address}}<p>{{.Header.Address}}</p>{{end}}
  {{if .Header.Phone}}<p>{{.Header.Phone}}</p>{{end}}
  {{if .Header.TaxID}}<p>CNPJ: {{.Header.TaxID}}</p>{{end}}
</header>
<div class="meta">
  <span><strong>Cupom:</strong> {{.ReceiptNo}}</span>
  <span><strong>Data:</strong> {{.Date}}</span>
  {{if .Seller}}<span><strong>Vendedor:</strong> {{.Seller}}</span>{{end}}
  {{if .Client}}<span><strong>Cliente:</strong> {{.Client}}{{if .ClientDocument}} ({{.ClientDocument}}){{end}}</span>{{end}}
</div>
<table>
  <thead>
    <tr><th>Item</th><th class="num">Qtd</th><th class="num">Unit.</th><th class="num">Total</th></tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{brl .UnitPrice}}</td><td class="num">{{brl .Total}}</td></tr>
    {{end}}
  </tbody>
</table>
<div class="totals">
  <div><span>Subtotal</span><span>{{brl .SubTotal}}</span></div>
  {{if gt .Discount 0.0}}<div><span>Desconto</span><span>-{{brl .Discount}}</span></div>{{end}}
  {{if gt .CouponDiscount 0.0}}<div><span>Cupom{{if .CouponCode}} {{.CouponCode}}{{end}}</span><span>-{{brl .CouponDiscount}}</span></div>{{end}}
  <div class="grand"><span>Total</span><span>{{brl .Total}}</span></div>
  {{if .PaymentMethod}}<div><span>Pagamento</span><span>{{.PaymentMethod}}{{if gt .Installments 1}} ({{.Installments}}x){{end}}</span></div>{{end}}
</div>
{{if .Footer}}<footer>{{.Footer}}</footer>{{end}}
</body>
</html>
`))

// RenderA4 renders a receipt as a printable A4 HTML page.
func RenderA4(r *entity.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := a4Template.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("receipt: failed to render A4 template: %w", err)
	}
	return buf.Bytes(), nil
}
