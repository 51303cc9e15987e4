package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/xelth-com/sapmockgo/internal/models"
)

// GeneratePOPrintout renders a one-page PDF for a purchase order: document
// header, requisition reference, material line and a QR code of the PO number.
func GeneratePOPrintout(po models.PurchaseOrder, pr models.PurchaseRequisition, mat models.Material) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Purchase Order", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Document: %s", po.PONumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Status: %s", po.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Created: %s", po.CreatedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Reference block
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Reference", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Requisition: %s (%s)", po.PRNumber, pr.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Vendor: %s", po.VendorID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Material line
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Item", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	description := mat.Description
	if description == "" {
		description = po.MaterialID
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", po.MaterialID, description), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Quantity: %.2f %s", po.Quantity, mat.BaseUnit), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Plant: %s", po.Plant), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Delivery: %s", po.DeliveryDate.Format("2006-01-02")), "", 1, "L", false, 0, "")

	// QR code of the document number, bottom left
	qrPng, err := qrcode.Encode(po.PONumber, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{
		ImageType: "PNG",
		ReadDpi:   true,
	}
	reader := bytes.NewReader(qrPng)
	_ = pdf.RegisterImageOptionsReader("po_qr", imgOptions, reader)
	pdf.ImageOptions("po_qr", 20, 200, 40, 40, false, imgOptions, 0, "")

	pdf.SetXY(20, 242)
	pdf.SetFontSize(8)
	pdf.CellFormat(40, 5, po.PONumber, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
