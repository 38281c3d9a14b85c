package invoice

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// RGB is a colour on the 0-255 scale.
type RGB struct{ R, G, B int }

// Layout holds the branding and colours of the invoice page.
type Layout struct {
	ClubName   string
	Tagline    string
	Currency   string
	Disclaimer string

	Brand       RGB
	Subtle      RGB
	Title       RGB
	Band        RGB
	Label       RGB
	Text        RGB
	TableHeader RGB
	Total       RGB
}

func DefaultLayout() Layout {
	return Layout{
		ClubName:    "Boshkash Academy",
		Tagline:     "Professional Football Training",
		Currency:    "$",
		Disclaimer:  "Thank you for your business. This is a computer generated invoice and requires no signature.",
		Brand:       RGB{0, 255, 136},
		Subtle:      RGB{150, 150, 150},
		Title:       RGB{220, 220, 220},
		Band:        RGB{245, 245, 245},
		Label:       RGB{100, 100, 100},
		Text:        RGB{30, 30, 30},
		TableHeader: RGB{30, 41, 59},
		Total:       RGB{0, 128, 0},
	}
}

// Canvas is the subset of *fpdf.Fpdf the invoice page is drawn with.
type Canvas interface {
	SetFont(familyStr, styleStr string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	Rect(x, y, w, h float64, styleStr string)
	SetX(x float64)
	SetY(y float64)
	SetXY(x, y float64)
	GetY() float64
	Ln(h float64)
	CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string)
	MultiCell(w, h float64, txtStr, borderStr, alignStr string, fill bool)
	ImageOptions(imageNameStr string, x, y, w, h float64, flow bool, options fpdf.ImageOptions, link int, linkStr string)
	PageNo() int
}

// Compose draws inv onto the current page of c. qrImage names an image already
// registered with the document.
func Compose(c Canvas, l Layout, inv *Invoice, qrImage string) {
	cell := func(w, h float64, txt, border string, ln int, align string, fill bool) {
		c.CellFormat(w, h, txt, border, ln, align, fill, 0, "")
	}
	color := func(rgb RGB) { c.SetTextColor(rgb.R, rgb.G, rgb.B) }

	// Header
	c.SetFont(fontFamily, "B", 24)
	color(l.Brand)
	cell(0, 15, l.ClubName, "", 1, "L", false)
	c.SetFont(fontFamily, "", 10)
	color(l.Subtle)
	cell(0, 5, l.Tagline, "", 1, "L", false)

	c.SetY(10)
	c.SetFont(fontFamily, "B", 30)
	color(l.Title)
	cell(0, 15, "INVOICE", "", 1, "R", false)

	// Bill to
	c.SetFillColor(l.Band.R, l.Band.G, l.Band.B)
	c.Rect(10, 35, 190, 40, "F")

	c.SetXY(15, 40)
	c.SetFont(fontFamily, "B", 10)
	color(l.Label)
	cell(40, 5, "BILL TO:", "", 1, "L", false)
	c.SetX(15)
	c.SetFont(fontFamily, "B", 14)
	color(l.Text)
	cell(100, 8, inv.Player.FullName, "", 1, "L", false)
	c.SetX(15)
	c.SetFont(fontFamily, "", 10)
	cell(100, 5, "Team: "+teamOrNA(inv.Player.Team), "", 1, "L", false)

	// Invoice details, right column
	details := [][2]string{
		{"Invoice #:", inv.Payment.InvoiceNumber},
		{"Date:", inv.IssueDate()},
	}
	c.SetY(40)
	for _, row := range details {
		c.SetX(120)
		c.SetFont(fontFamily, "B", 10)
		color(l.Label)
		cell(30, 5, row[0], "", 0, "L", false)
		c.SetFont(fontFamily, "", 10)
		color(l.Text)
		cell(50, 5, row[1], "", 1, "R", false)
	}

	// Line items
	c.SetY(85)
	c.SetFillColor(l.TableHeader.R, l.TableHeader.G, l.TableHeader.B)
	c.SetTextColor(255, 255, 255)
	c.SetFont(fontFamily, "B", 11)
	cell(110, 10, "Description", "", 0, "L", true)
	cell(40, 10, "Type", "", 0, "C", true)
	cell(40, 10, "Amount", "", 1, "R", true)

	color(l.Text)
	c.SetFont(fontFamily, "", 11)
	cell(110, 12, inv.LineDescription(), "B", 0, "L", false)
	cell(40, 12, inv.Subscription.Type, "B", 0, "C", false)
	cell(40, 12, FormatAmount(inv.Payment.PaidAmount), "B", 1, "R", false)

	// Total
	c.Ln(5)
	c.SetFont(fontFamily, "B", 14)
	cell(150, 12, "Total Paid", "", 0, "R", false)
	color(l.Total)
	cell(40, 12, l.Currency+FormatAmount(inv.Payment.PaidAmount), "", 1, "R", false)

	// QR code and closing note
	c.Ln(10)
	y := c.GetY()
	c.ImageOptions(qrImage, 15, y, 30, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	c.SetXY(50, y+10)
	c.SetFont(fontFamily, "I", 9)
	color(l.Label)
	c.MultiCell(0, 5, l.Disclaimer, "", "L", false)

	// Footer
	c.SetY(-15)
	c.SetFont(fontFamily, "I", 8)
	c.SetTextColor(128, 128, 128)
	cell(0, 10, fmt.Sprintf("Page %d", c.PageNo()), "", 0, "C", false)
}

func teamOrNA(team string) string {
	if team == "" {
		return "N/A"
	}
	return team
}
