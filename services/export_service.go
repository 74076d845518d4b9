package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/models"
)

// Entities that can be exported
const (
	ExportProducts  = "products"
	ExportSuppliers = "suppliers"
	ExportStock     = "stock"
	ExportOrders    = "orders"
)

// ErrUnknownExportEntity is returned for entities with no export definition
var ErrUnknownExportEntity = fmt.Errorf("unknown export entity")

const exportDateLayout = "2006-01-02"

// ExportData returns the header row and data rows for one exportable entity.
// The same data feeds the CSV and spreadsheet writers.
func ExportData(db *gorm.DB, entity string) ([]string, [][]interface{}, error) {
	switch entity {
	case ExportProducts:
		var products []models.Product
		if err := db.Order("id").Find(&products).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Name", "Category", "Description", "UnitPrice"}
		rows := make([][]interface{}, 0, len(products))
		for _, p := range products {
			rows = append(rows, []interface{}{p.ID, p.Name, p.Category, p.Description, p.UnitPrice.String()})
		}
		return headers, rows, nil

	case ExportSuppliers:
		var suppliers []models.Supplier
		if err := db.Order("id").Find(&suppliers).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Name", "ContactPerson", "Phone", "Email"}
		rows := make([][]interface{}, 0, len(suppliers))
		for _, s := range suppliers {
			rows = append(rows, []interface{}{s.ID, s.Name, s.ContactPerson, s.Phone, s.Email})
		}
		return headers, rows, nil

	case ExportStock:
		var stock []models.Stock
		if err := db.Preload("Product").Preload("Warehouse").Order("id").Find(&stock).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Product", "Warehouse", "Quantity", "LastRestocked"}
		rows := make([][]interface{}, 0, len(stock))
		for _, s := range stock {
			restocked := ""
			if s.LastRestocked != nil {
				restocked = s.LastRestocked.Format(exportDateLayout)
			}
			rows = append(rows, []interface{}{s.ID, s.Product.Name, s.Warehouse.Name, s.Quantity, restocked})
		}
		return headers, rows, nil

	case ExportOrders:
		var orders []models.Order
		if err := db.Preload("Supplier").Order("id").Find(&orders).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "OrderDate", "Supplier", "Status", "TotalAmount"}
		rows := make([][]interface{}, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, []interface{}{o.ID, o.OrderDate.Format(exportDateLayout), o.Supplier.Name, o.Status, o.TotalAmount.String()})
		}
		return headers, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownExportEntity, entity)
}

// WriteCSV streams headers and rows as CSV
func WriteCSV(w io.Writer, headers []string, rows [][]interface{}) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, 0, len(row))
		for _, cell := range row {
			record = append(record, fmt.Sprint(cell))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// BuildWorkbook renders headers and rows as a single-sheet spreadsheet
func BuildWorkbook(headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportFilename builds a timestamped download name for an export
func ExportFilename(entity, extension string) string {
	return fmt.Sprintf("%s_%s.%s", entity, time.Now().Format("20060102_150405"), extension)
}
