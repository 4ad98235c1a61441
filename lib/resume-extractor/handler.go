package resumeextractor

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"ai-interviewer-backend/models"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// ExtractText возвращает подготовленный текст резюме
	ExtractText(ctx context.Context, file models.File) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

type fileType string

const (
	fileTypePDF     fileType = "pdf"
	fileTypeTXT     fileType = "txt"
	fileTypeJSON    fileType = "json"
	fileTypeDOCX    fileType = "docx"
	fileTypeUnknown fileType = ""
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (i impl) ExtractText(ctx context.Context, file models.File) (string, error) {
	logger := log.
		WithField("file_name", file.FileName).
		WithField("content_type", file.ContentType)
	if len(file.Body) == 0 {
		return "", errors.Wrap(models.ErrExtraction, "файл пустой")
	}
	var (
		text string
		err  error
	)
	switch detectType(file) {
	case fileTypePDF:
		text, err = extractPDF(file.Body)
	case fileTypeTXT:
		text, err = extractTXT(file.Body)
	case fileTypeJSON:
		text, err = extractJSON(file.Body)
	case fileTypeDOCX:
		text, err = extractDOCX(file.Body)
	default:
		logger.Warn("неподдерживаемый тип файла резюме")
		return "", errors.Wrapf(models.ErrExtraction, "неподдерживаемый тип файла %q", file.FileName)
	}
	if err != nil {
		logger.WithError(err).Warn("ошибка извлечения текста резюме")
		return "", errors.Wrapf(models.ErrExtraction, "файл %q не прочитан: %v", file.FileName, err)
	}
	text = PreprocessText(text)
	if text == "" {
		return "", errors.Wrapf(models.ErrExtraction, "в файле %q не найден текст", file.FileName)
	}
	logger.WithField("text_len", len(text)).Info("текст резюме извлечен")
	return text, nil
}

func detectType(file models.File) fileType {
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
	name := strings.ToLower(file.FileName)
	switch {
	case contentType == "application/pdf" || strings.HasSuffix(name, ".pdf"):
		return fileTypePDF
	case contentType == "text/plain" || strings.HasSuffix(name, ".txt"):
		return fileTypeTXT
	case contentType == "application/json" || strings.HasSuffix(name, ".json"):
		return fileTypeJSON
	case contentType == docxContentType || filepath.Ext(name) == ".docx":
		return fileTypeDOCX
	}
	return fileTypeUnknown
}

// PreprocessText нормализует переводы строк, обрезает пробелы по краям строк и удаляет пустые строки
func PreprocessText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

func extractTXT(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", errors.New("текст не в кодировке UTF-8")
	}
	return string(body), nil
}

func extractJSON(body []byte) (string, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", errors.Wrap(err, "некорректный JSON")
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func extractPDF(body []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ошибка разбора PDF: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", err
	}
	pages := make([]string, 0, reader.NumPage())
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrapf(err, "страница %d", num)
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxBreak        = regexp.MustCompile(`<w:(br|cr)\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(body []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	content := doc.Editable().GetContent()
	return docxXMLToText(content), nil
}

func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxBreak.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
