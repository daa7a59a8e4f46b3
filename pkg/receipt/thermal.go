package receipt

import (
	"fmt"
	"strings"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
)

// FormatBRL formats a decimal amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// CharWidthForPaper maps paper width in millimeters to character columns.
func CharWidthForPaper(paperWidthMM int) int {
	if paperWidthMM == 58 {
		return Width58mm
	}
	return Width80mm
}

// RenderThermal renders a receipt as an ESC/POS byte stream for thermal printers.
func RenderThermal(r *entity.Receipt, paperWidthMM int) []byte {
	doc := NewDocument(CharWidthForPaper(paperWidthMM))

	doc.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.Text("CNPJ: " + r.Header.TaxID)
	}

	doc.Separator('=').
		SetAlign(AlignLeft).
		KeyValue("Cupom", r.ReceiptNo).
		KeyValue("Data", r.Date)

	if r.Seller != "" {
		doc.KeyValue("Vendedor", r.Seller)
	}
	if r.Client != "" {
		doc.KeyValue("Cliente", r.Client)
	}
	if r.ClientDocument != "" {
		doc.KeyValue("Documento", r.ClientDocument)
	}

	doc.Separator('-')
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, FormatBRL(item.Total))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", FormatBRL(r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Desconto", "-"+FormatBRL(r.Discount))
	}
	if r.CouponDiscount > 0 {
		label := "Cupom"
		if r.CouponCode != "" {
			label = "Cupom " + r.CouponCode
		}
		doc.KeyValue(label, "-"+FormatBRL(r.CouponDiscount))
	}

	doc.SetBold(true).
		SetFontSize(FontTall).
		KeyValue("TOTAL", FormatBRL(r.Total)).
		SetFontSize(FontNormal).
		SetBold(false)

	if r.PaymentMethod != "" {
		payment := r.PaymentMethod
		if r.Installments > 1 {
			payment = fmt.Sprintf("%s (%dx)", payment, r.Installments)
		}
		doc.KeyValue("Pagamento", payment)
	}

	doc.Separator('=')
	if r.Footer != "" {
		doc.SetAlign(AlignCenter).Text(r.Footer)
	}

	doc.FeedLines(4).Cut()
	return doc.Bytes()
}
