package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resume-roaster/internal/models"
)

type DocumentParserService interface {
	ExtractText(data []byte, mediaType string) (string, error)
	ExtractFile(filePath string) (string, error)
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

// ExtractText dispatches on the declared media type. Callers are expected to
// have rejected unsupported types already.
func (p *documentParserService) ExtractText(data []byte, mediaType string) (string, error) {
	var (
		text string
		err  error
	)

	switch mediaType {
	case models.MediaTypePDF:
		text, err = extractPDFText(data)
	case models.MediaTypeDOCX, models.MediaTypeDOC:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	if err != nil {
		return "", &ExtractionError{MediaType: mediaType, Err: err}
	}

	return text, nil
}

// ExtractFile reads a document from disk, inferring the media type from the
// file extension.
func (p *documentParserService) ExtractFile(filePath string) (string, error) {
	mediaType := MediaTypeFromFilename(filePath)
	if mediaType == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(filePath))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return p.ExtractText(data, mediaType)
}

func MediaTypeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.MediaTypePDF
	case ".docx":
		return models.MediaTypeDOCX
	case ".doc":
		return models.MediaTypeDOC
	default:
		return ""
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(pageText)
	}

	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent())
}

// docxXMLToText keeps the run text of a WordprocessingML body and turns
// paragraph ends and breaks into newlines.
func docxXMLToText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var textBuilder strings.Builder
	inRun, inText := false, false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				inRun = true
			case "t":
				inText = true
			case "tab":
				// tab stops in paragraph properties share the element name
				if inRun {
					textBuilder.WriteString("\t")
				}
			case "br", "cr":
				textBuilder.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				inRun = false
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}
