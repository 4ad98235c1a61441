package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"time"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type InterviewReport struct {
	SessionID   string
	Candidate   dbmodels.ContactInfo
	Turns       []dbmodels.InterviewTurn
	GeneratedAt time.Time
}

type QuestionAnswer struct {
	Index    int
	Question string
	Answer   string
}

// Pairs вопросы с ответами. Ответ на вопрос хранится в следующем ходе интервью.
func (r InterviewReport) Pairs() []QuestionAnswer {
	result := make([]QuestionAnswer, 0, len(r.Turns))
	for idx, turn := range r.Turns {
		item := QuestionAnswer{
			Index:    turn.QuestionIndex,
			Question: turn.Question,
		}
		if idx+1 < len(r.Turns) {
			item.Answer = r.Turns[idx+1].Answer
		}
		result = append(result, item)
	}
	return result
}

// GenerateInterviewReport отчет по интервью. fontFile - путь к TTF шрифту с кириллицей,
// без него используется встроенный Helvetica (только латиница).
func GenerateInterviewReport(report InterviewReport, fontFile string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInterviewReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	family, tr, err := setupFont(pdf, fontFile)
	if err != nil {
		return nil, err
	}
	pdf.SetTitle("Interview report", true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, tr("Interview report"), "", 1, "L", false, 0, "")

	pdf.SetFont(family, "", 11)
	_, lineHt := pdf.GetFontSize()
	lineHt += 2
	infoLines := []string{
		fmt.Sprintf("Candidate: %s", report.Candidate.Name),
		fmt.Sprintf("Email: %s", report.Candidate.Email),
		fmt.Sprintf("Phone: %s", report.Candidate.Phone),
		fmt.Sprintf("Position: %s", report.Candidate.Position),
		fmt.Sprintf("Session: %s", report.SessionID),
		fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("02.01.2006 15:04")),
	}
	for _, line := range infoLines {
		pdf.CellFormat(0, lineHt, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pairs := report.Pairs()
	if len(pairs) == 0 {
		pdf.MultiCell(0, lineHt, tr("No questions were asked."), "", "L", false)
	}
	for _, item := range pairs {
		pdf.SetFont(family, "B", 11)
		pdf.MultiCell(0, lineHt, tr(fmt.Sprintf("Q%d. %s", item.Index, item.Question)), "", "L", false)
		pdf.SetFont(family, "", 11)
		answer := item.Answer
		if answer == "" {
			answer = "(no answer recorded)"
		}
		pdf.MultiCell(0, lineHt, tr("Answer: "+answer), "", "L", false)
		pdf.Ln(2)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupFont(pdf *fpdf.Fpdf, fontFile string) (family string, tr func(string) string, err error) {
	if fontFile == "" {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	data, err := os.ReadFile(fontFile)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка чтения файла шрифта")
	}
	pdf.AddUTF8FontFromBytes("Report", "", data)
	pdf.AddUTF8FontFromBytes("Report", "B", data)
	if pdf.Error() != nil {
		return "", nil, pdf.Error()
	}
	return "Report", func(s string) string { return s }, nil
}
