package readers

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv/v2"
)

const docxMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type DocxFileReader struct{}

func (r *DocxFileReader) Ext() string {
	return ".docx"
}

func (r *DocxFileReader) ReadText(data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), docxMime, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	return res.Body, nil
}
