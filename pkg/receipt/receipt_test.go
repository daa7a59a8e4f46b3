package receipt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
)

func sampleReceipt() *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "Farmacia Central",
			Address:   "Rua das Flores 123",
			Phone:     "(11) 99999-0000",
			TaxID:     "12.345.678/0001-90",
		},
		ReceiptNo:     "VND-20260830-ABCD1234",
		Date:          "30/08/2026 14:32",
		Seller:        "Maria Silva",
		Client:        "Joao Souza",
		PaymentMethod: "cartao_credito",
		Installments:  3,
		Items: []entity.ReceiptItem{
			{Name: "Dipirona 500mg", Quantity: 2, UnitPrice: 8.50, Total: 17.00},
			{Name: "Vitamina C", Quantity: 1, UnitPrice: 25.90, Total: 25.90},
		},
		SubTotal:       42.90,
		Discount:       4.29,
		CouponCode:     "PROMO10",
		CouponDiscount: 3.86,
		Total:          34.75,
		Footer:         "Obrigado pela preferencia!",
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{9.9, "R$ 9,90"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{-42.5, "-R$ 42,50"},
	}
	for _, c := range cases {
		if got := FormatBRL(c.in); got != c.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderThermalContainsInitAndCut(t *testing.T) {
	data := RenderThermal(sampleReceipt(), 80)

	if !bytes.HasPrefix(data, []byte{0x1B, '@'}) {
		t.Error("expected stream to start with ESC @ init command")
	}
	if !bytes.Contains(data, []byte{0x1D, 'V', 0x00}) {
		t.Error("expected stream to contain paper cut command")
	}
}

func TestRenderThermalContent(t *testing.T) {
	data := string(RenderThermal(sampleReceipt(), 80))

	for _, want := range []string{
		"Farmacia Central",
		"VND-20260830-ABCD1234",
		"Dipirona 500mg",
		"R$ 34,75",
		"PROMO10",
		"cartao_credito (3x)",
		"Obrigado pela preferencia!",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("thermal output missing %q", want)
		}
	}
}

func TestRenderThermal58mmWidth(t *testing.T) {
	data := string(RenderThermal(sampleReceipt(), 58))

	if !strings.Contains(data, strings.Repeat("=", Width58mm)) {
		t.Error("expected 32-char separator for 58mm paper")
	}
	if strings.Contains(data, strings.Repeat("=", Width80mm)) {
		t.Error("did not expect 48-char separator for 58mm paper")
	}
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.ItemLine(1, strings.Repeat("Produto Com Nome Muito Longo ", 3), "R$ 1,00")

	for _, line := range strings.Split(string(doc.Bytes()), "\n") {
		if len(line) > Width58mm+3 { // allow for embedded control bytes
			t.Errorf("line exceeds paper width: %q", line)
		}
	}
}

func TestRenderA4(t *testing.T) {
	out, err := RenderA4(sampleReceipt())
	if err != nil {
		t.Fatalf("RenderA4 returned error: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		"<title>Recibo VND-20260830-ABCD1234</title>",
		"Farmacia Central",
		"Dipirona 500mg",
		"R$ 34,75",
		"PROMO10",
		"(3x)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("A4 output missing %q", want)
		}
	}
}

func TestRenderA4OmitsEmptySections(t *testing.T) {
	r := sampleReceipt()
	r.Discount = 0
	r.CouponDiscount = 0
	r.CouponCode = ""
	r.Footer = ""

	out, err := RenderA4(r)
	if err != nil {
		t.Fatalf("RenderA4 returned error: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "Desconto") {
		t.Error("expected no discount row when discount is zero")
	}
	if strings.Contains(html, "<footer>") {
		t.Error("expected no footer element when footer is empty")
	}
}
