package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportWidgetData renders a list or table widget's rows as an XLSX
// workbook. Other widget types are not exportable.
func (s *WidgetDataServiceImpl) ExportWidgetData(ctx context.Context, widgetID string) ([]byte, string, error) {
	widget, err := s.WidgetRepo.Get(ctx, widgetID)
	if err != nil {
		return nil, "", err
	}
	if widget.Type != WidgetTypeList && widget.Type != WidgetTypeTable {
		return nil, "", fmt.Errorf("widget type '%s' cannot be exported", widget.Type)
	}

	data, err := s.resolve(ctx, widget)
	if err != nil {
		return nil, "", err
	}
	rows, _ := data.([]map[string]any)

	columns := widget.Config.Columns
	if len(columns) == 0 && len(rows) > 0 {
		for k := range rows[0] {
			columns = append(columns, k)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Export"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			switch v := row[col].(type) {
			case time.Time:
				f.SetCellValue(sheetName, cell, v.Format("2006-01-02 15:04:05"))
			case primitive.ObjectID:
				f.SetCellValue(sheetName, cell, v.Hex())
			case map[string]interface{}:
				f.SetCellValue(sheetName, cell, fmt.Sprintf("%v", v))
			default:
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx",
		strings.ReplaceAll(strings.ToLower(widget.Title), " ", "_"),
		time.Now().Format("20060102_150405"))

	return buffer.Bytes(), filename, nil
}
