// Package quotepdf renders a quotation request as a printable PDF the shop
// can hand to the customer.
package quotepdf

import (
	"bytes"
	"fmt"
	"strings"

	"camstore-backend/models"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// ShopInfo is printed in the letterhead.
type ShopInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
)

// Render lays out q on a single A4 page.
func Render(q models.QuotationRequest, shop ShopInfo) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	title := "QUOTATION REQUEST"
	if q.Kind == models.QuotationKindBooking {
		title = "SITE VISIT BOOKING"
	}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{Size: 20, Style: consts.Bold, Color: darkGray})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(shop.Name, props.Text{Size: 14, Style: consts.Bold, Color: darkGray})
		})
	})
	contact := strings.Join(nonEmpty(shop.Phone, shop.Email, shop.Address), "  |  ")
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(contact, props.Text{Size: 9, Color: mediumGray})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("CUSTOMER", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("REQUEST", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(q.Name, props.Text{Size: 10, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("Ref "+shortRef(q), props.Text{Size: 10, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(q.Phone, props.Text{Size: 9, Color: mediumGray})
		})
		m.Col(6, func() {
			m.Text("Date: "+q.CreatedAt.Format("Jan 02, 2006"), props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
	})
	if q.Email != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(q.Email, props.Text{Size: 9, Color: mediumGray})
			})
		})
	}

	m.Row(8, func() {})

	for _, line := range Lines(q) {
		label, value := line[0], line[1]
		m.Row(6, func() {
			m.Col(4, func() {
				m.Text(label, props.Text{Size: 9, Style: consts.Bold, Color: darkGray})
			})
			m.Col(8, func() {
				m.Text(value, props.Text{Size: 9, Color: darkGray})
			})
		})
	}

	if q.Message != "" {
		m.Row(8, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("NOTES", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
			})
		})
		m.Row(20, func() {
			m.Col(12, func() {
				m.Text(q.Message, props.Text{Size: 9, Color: darkGray})
			})
		})
	}

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Prices are indicative until a site survey is completed.", props.Text{Size: 8, Color: mediumGray})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render quotation %s: %w", q.ID, err)
	}
	return &buf, nil
}

// Lines is the label/value table printed for q. Empty fields are skipped.
func Lines(q models.QuotationRequest) [][2]string {
	var out [][2]string
	add := func(label, value string) {
		if value != "" {
			out = append(out, [2]string{label, value})
		}
	}
	add("Status", q.Status)
	add("City", q.City)
	add("Address", q.Address)
	add("Property type", q.PropertyType)
	if q.CameraCount > 0 {
		add("Cameras", fmt.Sprintf("%d", q.CameraCount))
	}
	if q.Product != nil {
		add("Product", strings.TrimSpace(q.Product.Brand+" "+q.Product.Name))
	}
	if q.Budget.Valid {
		add("Budget", "Rs. "+q.Budget.Decimal.StringFixed(2))
	}
	add("Preferred date", q.PreferredDate)
	return out
}

func shortRef(q models.QuotationRequest) string {
	return strings.ToUpper(q.ID.String()[:8])
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
