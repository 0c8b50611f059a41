package document

import (
	"bytes"
	"fmt"
	"html/template"
)

// PrintRenderer is the degraded export path: the same layout emitted as
// styled markup for the browser's native print dialog instead of a PDF
// download. It shares the Document contract with PDFRenderer so both
// outputs stay visually equivalent.
type PrintRenderer struct {
	tmpl *template.Template
}

func NewPrintRenderer() *PrintRenderer {
	tmpl := template.Must(template.New("quotation").
		Funcs(template.FuncMap{"money": FormatMoney}).
		Parse(printTemplate))
	return &PrintRenderer{tmpl: tmpl}
}

func (r *PrintRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *PrintRenderer) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render quotation markup: %w", err)
	}
	return buf.Bytes(), nil
}

const printTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Quotation {{.QuotationNo}}</title>
<style>
  @page { size: A4 portrait; margin: 14mm; }
  body { font-family: Helvetica, Arial, sans-serif; color: #212529; font-size: 12px; }
  .header { display: flex; justify-content: space-between; align-items: baseline; }
  .header h1 { font-size: 20px; margin: 0; }
  .header .doc-title { font-size: 18px; font-weight: bold; }
  .muted { color: #646464; }
  .meta { text-align: right; }
  .client { background: #f5f3ef; padding: 8px; margin: 12px 0; }
  .client .label { font-size: 10px; font-weight: bold; color: #646464; }
  table { width: 100%; border-collapse: collapse; margin: 8px 0; }
  th { background: #212529; color: #fff; font-size: 10px; padding: 6px 4px; text-align: left; }
  th.num, td.num { text-align: right; }
  td { padding: 5px 4px; border-bottom: 1px solid #e9ecef; }
  tr:nth-child(even) td { background: #f8f9fa; }
  .totals { width: 45%; margin-left: auto; }
  .totals td { background: #f5f5f5 !important; }
  .totals .grand td { font-size: 14px; font-weight: bold; }
  .section-label { font-size: 10px; font-weight: bold; color: #646464; margin-top: 14px; }
  .signatory { margin-top: 36px; text-align: right; }
  .signatory img { max-height: 60px; }
</style>
</head>
<body onload="window.print()">
  <div class="header">
    <div>
      <h1>{{.CompanyName}}</h1>
      <div class="muted">{{.CompanyAddress}}{{if .CompanyEmail}} | {{.CompanyEmail}}{{end}}{{if .CompanyPhone}} | {{.CompanyPhone}}{{end}}</div>
    </div>
    <div class="meta">
      <div class="doc-title">QUOTATION</div>
      <div><strong>No: {{.QuotationNo}}</strong>{{if gt .Revision 1}} (Rev. {{.Revision}}){{end}}</div>
      <div class="muted">Date: {{.QuotationDate}}{{if .ValidUntil}} | Valid until: {{.ValidUntil}}{{end}}</div>
    </div>
  </div>

  <div class="client">
    <div class="label">PREPARED FOR</div>
    <strong>{{.ClientName}}{{if .ClientCompany}}, {{.ClientCompany}}{{end}}</strong>
    {{if .ClientAddress}}<div>{{.ClientAddress}}</div>{{end}}
    <div class="muted">{{.ClientEmail}}{{if .ClientPhone}} | {{.ClientPhone}}{{end}}</div>
  </div>

  <table>
    <tr>
      <th>#</th><th>Category</th><th>Description</th>
      <th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.No}}</td><td>{{.Category}}</td><td>{{.Description}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{money .UnitPrice}}</td>
      <td class="num">{{money .Amount}}</td>
    </tr>
    {{end}}
  </table>

  {{if .Addons}}
  <div class="section-label">SERVER &amp; DOMAIN CHARGES</div>
  <table>
    {{range .Addons}}
    <tr>
      <td>{{.Label}}</td><td>{{.Duration}}</td>
      <td class="num">{{money .UnitPrice}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}

  <table class="totals">
    <tr><td>Total Service Charge</td><td class="num">{{money .TotalServiceCharge}}</td></tr>
    <tr><td>Total Server &amp; Domain Charge</td><td class="num">{{money .TotalServerDomainCharge}}</td></tr>
    {{if .DiscountLabel}}
    <tr><td>{{.DiscountLabel}}</td><td class="num">- {{money .DiscountAmount}}</td></tr>
    <tr><td>After Discount</td><td class="num">{{money .AfterDiscountTotal}}</td></tr>
    {{end}}
    {{if not .TaxRate.IsZero}}
    <tr><td>Tax ({{.TaxRate.String}}%)</td><td class="num">{{money .TaxAmount}}</td></tr>
    {{end}}
    <tr class="grand"><td>Grand Total</td><td class="num">{{money .GrandTotal}}</td></tr>
  </table>

  {{if .PaymentTerms}}
  <div class="section-label">PAYMENT TERMS</div>
  <div>{{.PaymentTerms}}</div>
  {{end}}

  {{if .AdditionalNotes}}
  <div class="section-label">NOTES</div>
  <div>{{.AdditionalNotes}}</div>
  {{end}}

  {{if .SignatoryName}}
  <div class="signatory">
    {{if .SignaturePath}}<img src="{{.SignaturePath}}" alt="signature"><br>{{end}}
    <strong>{{.SignatoryName}}</strong>
    {{if .SignatoryDesignation}}<br><span class="muted">{{.SignatoryDesignation}}</span>{{end}}
  </div>
  {{end}}
</body>
</html>
`
