package mail

import (
	"fmt"
	"strings"

	"github.com/trendovo/trendovo-golang/internal/models"
)

// Fixed company identity embedded in every transactional document.
const (
	CompanyName    = "Trendovo Sp. z o.o."
	CompanyStreet  = "ul. Przemysłowa 14"
	CompanyCity    = "61-541 Poznań"
	CompanyCountry = "Polska"
	CompanyVATID   = "PL7792433218"

	BankNamePL    = "mBank S.A."
	BankAccountPL = "PL 44 1140 2004 0000 3502 7653 5831"
	BankAccountHU = "HU42 1177 3016 1111 1018 0000 0000"
	BankAccountCZ = "CZ65 0800 0000 1920 0014 5399"
)

// CurrencyFor maps the order locale to its display currency.
func CurrencyFor(locale string) string {
	switch locale {
	case "hu":
		return "Ft"
	case "cs":
		return "Kč"
	default:
		return "zł"
	}
}

// BankAccountFor returns the bank account shown for the order's locale.
func BankAccountFor(locale string) string {
	switch locale {
	case "hu":
		return BankAccountHU
	case "cs":
		return BankAccountCZ
	default:
		return BankAccountPL
	}
}

type emailTexts struct {
	confirmSubject string // order confirmation, takes order number
	confirmIntro   string
	shippedSubject string // shipping notification, takes order number
	shippedIntro   string // takes tracking number
	paidSubject    string // payment confirmation, takes order number
	paidIntro      string
	totalLabel     string
	bankLabel      string
	signature      string
}

var texts = map[string]emailTexts{
	"pl": {
		confirmSubject: "Potwierdzenie zamówienia %s",
		confirmIntro:   "Dziękujemy za złożenie zamówienia w naszym sklepie.",
		shippedSubject: "Twoje zamówienie %s zostało wysłane",
		shippedIntro:   "Twoja paczka jest w drodze. Numer przesyłki: <strong>%s</strong>.",
		paidSubject:    "Potwierdzenie płatności za zamówienie %s",
		paidIntro:      "Otrzymaliśmy Twoją płatność. Zamówienie przekazujemy do realizacji.",
		totalLabel:     "Razem",
		bankLabel:      "Numer konta",
		signature:      "Pozdrawiamy,<br>Zespół Trendovo",
	},
	"hu": {
		confirmSubject: "Rendelés visszaigazolása: %s",
		confirmIntro:   "Köszönjük a rendelését webáruházunkban.",
		shippedSubject: "A(z) %s rendelését feladtuk",
		shippedIntro:   "A csomagja úton van. Nyomkövetési szám: <strong>%s</strong>.",
		paidSubject:    "Fizetés visszaigazolása: %s",
		paidIntro:      "A befizetését megkaptuk. A rendelését feldolgozzuk.",
		totalLabel:     "Összesen",
		bankLabel:      "Bankszámlaszám",
		signature:      "Üdvözlettel,<br>a Trendovo csapata",
	},
	"cs": {
		confirmSubject: "Potvrzení objednávky %s",
		confirmIntro:   "Děkujeme za vaši objednávku v našem obchodě.",
		shippedSubject: "Vaše objednávka %s byla odeslána",
		shippedIntro:   "Váš balíček je na cestě. Sledovací číslo: <strong>%s</strong>.",
		paidSubject:    "Potvrzení platby za objednávku %s",
		paidIntro:      "Vaši platbu jsme přijali. Objednávku předáváme k vyřízení.",
		totalLabel:     "Celkem",
		bankLabel:      "Číslo účtu",
		signature:      "S pozdravem,<br>tým Trendovo",
	},
}

func textsFor(locale string) emailTexts {
	if t, ok := texts[locale]; ok {
		return t
	}
	return texts["pl"]
}

// OrderConfirmation builds the document sent right after checkout.
func OrderConfirmation(o models.Order) (subject, body string) {
	t := textsFor(o.Locale)
	currency := CurrencyFor(o.Locale)

	var items strings.Builder
	for _, line := range o.Items {
		label := line.Name
		if line.Variant != "" {
			label += " (" + line.Variant + ")"
		}
		items.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td align=\"center\">%d</td><td align=\"right\">%.2f %s</td></tr>",
			label, line.Quantity, line.UnitPrice, currency,
		))
	}

	subject = fmt.Sprintf(t.confirmSubject, o.OrderNumber)
	body = fmt.Sprintf(`<html><body>
<p>%s</p>
<p><strong>%s</strong></p>
<table width="100%%" cellpadding="4" border="0">%s</table>
<p>%s: <strong>%.2f %s</strong></p>
<p>%s: %s<br>%s</p>
<p>%s</p>
<hr>
<p style="color:#888;font-size:12px">%s, %s, %s, %s &middot; %s</p>
</body></html>`,
		t.confirmIntro,
		o.OrderNumber,
		items.String(),
		t.totalLabel, o.Total, currency,
		t.bankLabel, BankAccountFor(o.Locale), BankNamePL,
		t.signature,
		CompanyName, CompanyStreet, CompanyCity, CompanyCountry, CompanyVATID,
	)
	return subject, body
}

// ShippingNotification builds the document sent when an order
// transitions to "shipped".
func ShippingNotification(o models.Order, tracking string) (subject, body string) {
	t := textsFor(o.Locale)

	subject = fmt.Sprintf(t.shippedSubject, o.OrderNumber)
	body = fmt.Sprintf(`<html><body>
<p>%s</p>
<p>%s</p>
<hr>
<p style="color:#888;font-size:12px">%s, %s, %s, %s</p>
</body></html>`,
		fmt.Sprintf(t.shippedIntro, tracking),
		t.signature,
		CompanyName, CompanyStreet, CompanyCity, CompanyCountry,
	)
	return subject, body
}

// PaymentConfirmation builds the document sent when the payment status
// transitions to "paid".
func PaymentConfirmation(o models.Order) (subject, body string) {
	t := textsFor(o.Locale)
	currency := CurrencyFor(o.Locale)

	subject = fmt.Sprintf(t.paidSubject, o.OrderNumber)
	body = fmt.Sprintf(`<html><body>
<p>%s</p>
<p>%s: <strong>%.2f %s</strong></p>
<p>%s</p>
<hr>
<p style="color:#888;font-size:12px">%s, %s, %s, %s</p>
</body></html>`,
		t.paidIntro,
		t.totalLabel, o.Total, currency,
		t.signature,
		CompanyName, CompanyStreet, CompanyCity, CompanyCountry,
	)
	return subject, body
}

// InquiryMessage builds the internal notification for a storefront
// contact-form submission.
func InquiryMessage(name, email, message string) (subject, body string) {
	subject = fmt.Sprintf("Zapytanie ze sklepu od %s", name)
	body = fmt.Sprintf(`<html><body>
<p><strong>Od:</strong> %s (%s)</p>
<p>%s</p>
</body></html>`, name, email, message)
	return subject, body
}
