package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dailylogapimodels "stroy-tools-backend/models/api/dailylog"
)

// GenerateDailyLog - печатная форма дневного отчёта для передачи заказчику
func GenerateDailyLog(item dailylogapimodels.DailyLogView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateDailyLog panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "", 12)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	_, lineHt := pdf.GetFontSize()
	html := pdf.HTMLBasicNew()

	htmlStr := fmt.Sprintf("<b>Дневной отчёт от %v</b><br>", item.Date) +
		fmt.Sprintf("Проект: %v<br>", item.ProjectName) +
		fmt.Sprintf("Автор: %v<br>", item.SubmitterName) +
		fmt.Sprintf("Статус: %v<br>", item.StatusName) +
		fmt.Sprintf("Численность бригады: %v, всего часов: %.2f<br>", item.CrewCount, item.TotalHours)
	if len(item.Weather) > 0 {
		htmlStr += "Погода: "
		for idx, condition := range item.Weather {
			if idx > 0 {
				htmlStr += ", "
			}
			htmlStr += condition
		}
		if item.TemperatureC != nil {
			htmlStr += fmt.Sprintf(", %.0f°C", *item.TemperatureC)
		}
		htmlStr += "<br>"
	}
	if item.WeatherDelay {
		htmlStr += "<b>Простой по погодным условиям</b><br>"
	}
	html.Write(lineHt, htmlStr)

	if len(item.Entries) > 0 {
		writeSection(pdf, "Работы")
		for _, entry := range item.Entries {
			writeLine(pdf, fmt.Sprintf("%v (%v): %v чел., %.2f ч.", entry.Description, entry.Trade, entry.CrewCount, entry.Hours))
		}
	}
	if len(item.Materials) > 0 {
		writeSection(pdf, "Материалы")
		for _, material := range item.Materials {
			writeLine(pdf, fmt.Sprintf("%v: %.2f %v, поставщик %v", material.Name, material.Quantity, material.Unit, material.Supplier))
		}
	}
	if len(item.Issues) > 0 {
		writeSection(pdf, "Проблемы")
		for _, issue := range item.Issues {
			mark := "открыта"
			if issue.IsResolved {
				mark = "решена"
			}
			writeLine(pdf, fmt.Sprintf("%v (%v)", issue.Description, mark))
		}
	}
	if len(item.Visitors) > 0 {
		writeSection(pdf, "Посетители")
		for _, visitor := range item.Visitors {
			writeLine(pdf, fmt.Sprintf("%v, %v: %v", visitor.Name, visitor.Organization, visitor.Purpose))
		}
	}
	if item.Notes != "" {
		writeSection(pdf, "Примечания")
		writeLine(pdf, item.Notes)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 6, title, "", "L", false)
	pdf.SetFont("Arial", "", 12)
}

func writeLine(pdf *fpdf.Fpdf, text string) {
	pdf.MultiCell(0, 6, text, "", "L", false)
}
