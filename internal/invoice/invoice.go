package invoice

import (
	"bytes"
	"fmt"

	"github.com/gosimple/unidecode"
	"github.com/jung-kurt/gofpdf"
	"github.com/trendovo/trendovo-golang/internal/mail"
	"github.com/trendovo/trendovo-golang/internal/models"
)

// tr transliterates regional diacritics (ą, ő, ř, ...) to ASCII so the
// text renders with the built-in core fonts.
func tr(s string) string {
	return unidecode.Unidecode(s)
}

var labels = map[string]struct {
	title, seller, buyer, item, qty, unitPrice, lineTotal, total, bank, payment string
}{
	"pl": {"Faktura", "Sprzedawca", "Nabywca", "Nazwa", "Ilość", "Cena jedn.", "Wartość", "Razem do zapłaty", "Numer konta", "Forma płatności: przelew"},
	"hu": {"Számla", "Eladó", "Vevő", "Megnevezés", "Menny.", "Egységár", "Érték", "Fizetendő összesen", "Bankszámlaszám", "Fizetési mód: átutalás"},
	"cs": {"Faktura", "Dodavatel", "Odběratel", "Název", "Počet", "Cena/ks", "Celkem", "Celkem k úhradě", "Číslo účtu", "Způsob platby: převodem"},
}

func labelsFor(locale string) struct {
	title, seller, buyer, item, qty, unitPrice, lineTotal, total, bank, payment string
} {
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels["pl"]
}

// Generate renders the A4 invoice PDF for an order.
func Generate(o models.Order) ([]byte, error) {
	l := labelsFor(o.Locale)
	currency := mail.CurrencyFor(o.Locale)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// --- Header ---
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s %s", l.title, o.OrderNumber)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, o.CreatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	// --- Seller / buyer blocks ---
	startY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 6, tr(l.seller), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		mail.CompanyName,
		mail.CompanyStreet,
		mail.CompanyCity + ", " + mail.CompanyCountry,
		"NIP: " + mail.CompanyVATID,
	} {
		pdf.CellFormat(90, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.SetXY(110, startY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 6, tr(l.buyer), "", 0, "L", false, 0, "")
	pdf.SetXY(110, startY+6)
	pdf.SetFont("Helvetica", "", 10)
	for i, line := range []string{
		o.CustomerName,
		o.BillingStreet,
		o.BillingZip + " " + o.BillingCity,
		o.BillingCountry,
	} {
		pdf.SetXY(110, startY+6+float64(i)*5)
		pdf.CellFormat(90, 5, tr(line), "", 0, "L", false, 0, "")
	}
	pdf.SetY(startY + 32)
	pdf.Ln(6)

	// --- Items table ---
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 8, tr(l.item), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, tr(l.qty), "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, tr(l.unitPrice), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, tr(l.lineTotal), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range o.Items {
		name := line.Name
		if line.Variant != "" {
			name += " (" + line.Variant + ")"
		}
		lineTotal := float64(line.Quantity) * line.UnitPrice
		pdf.CellFormat(90, 7, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, tr(fmt.Sprintf("%.2f %s", line.UnitPrice, currency)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, tr(fmt.Sprintf("%.2f %s", lineTotal, currency)), "1", 1, "R", false, 0, "")
	}

	// --- Total ---
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 9, tr(l.total), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 9, tr(fmt.Sprintf("%.2f %s", o.Total, currency)), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	// --- Payment details ---
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(l.payment), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %s (%s)", l.bank, mail.BankAccountFor(o.Locale), mail.BankNamePL)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
