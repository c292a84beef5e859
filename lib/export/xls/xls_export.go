package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	timeentryapimodels "stroy-tools-backend/models/api/timeentry"
)

type Provider interface {
	ExportTimeReport(list []timeentryapimodels.TimeEntryView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var timeReportHeaders = []string{"Сотрудник", "Проект", "Начало смены", "Конец смены", "Часы", "Статус", "Примечание"}

func (i impl) ExportTimeReport(list []timeentryapimodels.TimeEntryView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, timeReportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeTimeReportData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Учёт времени")
	return f.WriteToBuffer()
}

func writeTimeReportData(f *excelize.File, sheet string, list []timeentryapimodels.TimeEntryView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(timeReportHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.UserName); err != nil {
			return row, err
		}

		// "Проект"
		col++
		if err := writeColumn(f, sheet, col, row, item.ProjectName); err != nil {
			return row, err
		}

		// "Начало смены"
		col++
		if err := writeColumn(f, sheet, col, row, item.ClockIn.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Конец смены"
		col++
		if item.ClockOut != nil {
			if err := writeColumn(f, sheet, col, row, item.ClockOut.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}

		// "Часы"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", item.TotalHours)); err != nil {
			return row, err
		}

		// "Статус"
		col++
		status := item.StatusName
		if item.AutoClosed {
			status = status + " (автозакрытие)"
		}
		if err := writeColumn(f, sheet, col, row, status); err != nil {
			return row, err
		}

		// "Примечание"
		col++
		if err := writeColumn(f, sheet, col, row, item.Note); err != nil {
			return row, err
		}
	}
	return row, nil
}
