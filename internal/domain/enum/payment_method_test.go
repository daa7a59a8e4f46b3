package enum

import "testing"

func TestPaymentMethodValid(t *testing.T) {
	valid := []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodPix,
		PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodBankSlip,
	}
	for _, m := range valid {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}

	for _, m := range []PaymentMethod{"", "cheque", "DINHEIRO"} {
		if m.Valid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}

func TestAllowsInstallments(t *testing.T) {
	if !PaymentMethodCreditCard.AllowsInstallments() || !PaymentMethodBankSlip.AllowsInstallments() {
		t.Error("credit card and bank slip must allow installments")
	}
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodPix, PaymentMethodDebitCard} {
		if m.AllowsInstallments() {
			t.Errorf("%s must not allow installments", m)
		}
	}
}
