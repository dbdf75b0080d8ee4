package output

import "github.com/xuri/excelize/v2"

func cellRef(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}
