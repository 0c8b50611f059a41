package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFRenderer is the download strategy: a fixed-layout, paginated A4
// portrait document.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Render lays the document out page by page and returns the PDF bytes.
// Any generation failure aborts the export; no partial artifact is returned.
func (r *PDFRenderer) Render(doc *Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addClientBlock(m, doc)
	addServiceTable(m, doc)
	addAddonBlock(m, doc)
	addTotals(m, doc)
	addTerms(m, doc)
	addSignatory(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	return out.GetBytes(), nil
}

// addHeader adds the company identity block and the quotation metadata.
func addHeader(m core.Maroto, doc *Document) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(doc.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New("QUOTATION", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	contactLine := joinNonEmpty([]string{doc.CompanyAddress, doc.CompanyEmail, doc.CompanyPhone}, " | ")
	m.AddRows(
		row.New(7).Add(
			col.New(7).Add(
				text.New(contactLine, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("No: %s", doc.QuotationNo), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	meta := fmt.Sprintf("Date: %s", doc.QuotationDate)
	if doc.ValidUntil != "" {
		meta += fmt.Sprintf("  |  Valid until: %s", doc.ValidUntil)
	}
	if doc.Revision > 1 {
		meta += fmt.Sprintf("  |  Rev. %d", doc.Revision)
	}
	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(doc.CompanyWebsite, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(5).Add(
				text.New(meta, props.Text{
					Size:  8,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addClientBlock adds the "Prepared for" client details.
func addClientBlock(m core.Maroto, doc *Document) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("PREPARED FOR", labelStyle)).WithStyle(headerCell),
		),
	)

	name := doc.ClientName
	if doc.ClientCompany != "" {
		name = fmt.Sprintf("%s, %s", doc.ClientName, doc.ClientCompany)
	}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(name, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
	)

	if doc.ClientAddress != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(doc.ClientAddress, valueStyle))))
	}

	contact := joinNonEmpty([]string{doc.ClientEmail, doc.ClientPhone}, " | ")
	if contact != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(contact, valueStyle))))
	}

	m.AddRows(row.New(3))
}

// addServiceTable adds the itemized service table.
func addServiceTable(m core.Maroto, doc *Document) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Category", headerTextLeft)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, line := range doc.Lines {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colNo := col.New(1).Add(text.New(fmt.Sprintf("%d", line.No), bodyText))
		colCat := col.New(2).Add(text.New(line.Category, bodyTextLeft))
		colDesc := col.New(5).Add(text.New(line.Description, bodyTextLeft))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%d", line.Quantity), bodyText))
		colRate := col.New(1).Add(text.New(FormatMoney(line.UnitPrice), bodyTextRight))
		colAmount := col.New(2).Add(text.New(FormatMoney(line.Amount), bodyTextRight))

		if cellStyle != nil {
			colNo = colNo.WithStyle(cellStyle)
			colCat = colCat.WithStyle(cellStyle)
			colDesc = colDesc.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colRate = colRate.WithStyle(cellStyle)
			colAmount = colAmount.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colNo, colCat, colDesc, colQty, colRate, colAmount))
	}

	m.AddRows(row.New(2))
}

// addAddonBlock enumerates the included server/domain charges. Excluded
// charges were already filtered out by Build.
func addAddonBlock(m core.Maroto, doc *Document) {
	if len(doc.Addons) == 0 {
		return
	}

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("SERVER & DOMAIN CHARGES", labelStyle)),
		),
	)

	for _, addon := range doc.Addons {
		m.AddRows(
			row.New(6).Add(
				col.New(5).Add(text.New(addon.Label, props.Text{Size: 8, Align: align.Left})),
				col.New(4).Add(text.New(addon.Duration, props.Text{Size: 8, Align: align.Left})),
				col.New(3).Add(text.New(FormatMoney(addon.UnitPrice), props.Text{Size: 8, Align: align.Right})),
			),
		)
	}

	m.AddRows(row.New(2))
}

// addTotals adds the computed-totals summary block.
func addTotals(m core.Maroto, doc *Document) {
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	addRow := func(label, value string) {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(text.New(label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	addRow("Total Service Charge", FormatMoney(doc.TotalServiceCharge))
	addRow("Total Server & Domain Charge", FormatMoney(doc.TotalServerDomainCharge))
	if doc.DiscountLabel != "" {
		addRow(doc.DiscountLabel, "- "+FormatMoney(doc.DiscountAmount))
		addRow("After Discount", FormatMoney(doc.AfterDiscountTotal))
	}
	if !doc.TaxRate.IsZero() {
		addRow(fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String()), FormatMoney(doc.TaxAmount))
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatMoney(doc.GrandTotal), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})).WithStyle(summaryCell),
		),
	)

	m.AddRows(row.New(3))
}

// addTerms adds payment terms and additional notes, when present.
func addTerms(m core.Maroto, doc *Document) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{Size: 8, Align: align.Left}

	if doc.PaymentTerms != "" {
		m.AddRows(
			row.New(5).Add(col.New(12).Add(text.New("PAYMENT TERMS", labelStyle))),
			row.New(8).Add(col.New(12).Add(text.New(doc.PaymentTerms, valueStyle))),
		)
	}

	if doc.AdditionalNotes != "" {
		m.AddRows(
			row.New(5).Add(col.New(12).Add(text.New("NOTES", labelStyle))),
			row.New(8).Add(col.New(12).Add(text.New(doc.AdditionalNotes, valueStyle))),
		)
	}
}

// addSignatory adds the signature block with the optional signature image.
func addSignatory(m core.Maroto, doc *Document) {
	if doc.SignatoryName == "" && doc.SignaturePath == "" {
		return
	}

	m.AddRows(row.New(6))

	if doc.SignaturePath != "" {
		m.AddRows(
			row.New(14).Add(
				col.New(8),
				col.New(4).Add(image.NewFromFile(doc.SignaturePath, props.Rect{
					Center:  true,
					Percent: 90,
				})),
			),
		)
	}

	m.AddRows(
		row.New(6).Add(
			col.New(8),
			col.New(4).Add(text.New(doc.SignatoryName, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
	if doc.SignatoryDesignation != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(8),
				col.New(4).Add(text.New(doc.SignatoryDesignation, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				})),
			),
		)
	}
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
