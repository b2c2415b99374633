package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/munek/internal/domain"
)

const (
	OrdersSheet = "Pedidos"
	ItemsSheet  = "Detalle"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	orderHeader = []interface{}{"Orden", "Fecha", "Cliente", "Email", "Teléfono", "Dirección", "Estado", "Artículos", "Subtotal", "Envío", "Total", "Notas"}
	itemHeader  = []interface{}{"Orden", "Producto", "Variante", "ID variante", "Cantidad", "Precio", "Importe"}
)

// WriteOrders exporta las órdenes a un libro con una hoja de resumen y otra
// con una fila por ítem.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return fmt.Errorf("crear hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return err
	}

	if err := writeHeader(f, OrdersSheet, orderHeader, bold); err != nil {
		return err
	}
	if err := writeHeader(f, ItemsSheet, itemHeader, bold); err != nil {
		return err
	}

	itemRow := 2
	for i, o := range orders {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		err := f.SetSheetRow(OrdersSheet, cell, &[]interface{}{
			o.ID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.UserName,
			o.UserEmail,
			o.Phone,
			o.ShippingAddress,
			o.Status.Label(),
			o.ItemCount(),
			o.Subtotal,
			o.Shipping,
			o.Total,
			o.Notes,
		})
		if err != nil {
			return fmt.Errorf("fila %s: %w", o.ID, err)
		}
		for _, it := range o.Items {
			cell, _ := excelize.CoordinatesToCellName(1, itemRow)
			err := f.SetSheetRow(ItemsSheet, cell, &[]interface{}{
				o.ID, it.ProductName, it.VariantLabel, it.VariantID, it.Quantity, it.Price, it.LineTotal(),
			})
			if err != nil {
				return fmt.Errorf("ítem %s/%s: %w", o.ID, it.VariantID, err)
			}
			itemRow++
		}
	}

	if len(orders) > 0 {
		last, _ := excelize.CoordinatesToCellName(11, len(orders)+1)
		if err := f.SetCellStyle(OrdersSheet, "I2", last, money); err != nil {
			return err
		}
	}
	if itemRow > 2 {
		last, _ := excelize.CoordinatesToCellName(7, itemRow-1)
		if err := f.SetCellStyle(ItemsSheet, "F2", last, money); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(OrdersSheet, "A", "A", 20)
	_ = f.SetColWidth(OrdersSheet, "C", "F", 28)
	_ = f.SetColWidth(ItemsSheet, "B", "C", 34)

	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("encabezado %s: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}
