package readers

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv/v2"
)

type PdfFileReader struct{}

func (r *PdfFileReader) Ext() string {
	return ".pdf"
}

func (r *PdfFileReader) ReadText(data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	return res.Body, nil
}
