package readers

type TxtFileReader struct{}

func (r *TxtFileReader) Ext() string {
	return ".txt"
}

func (r *TxtFileReader) ReadText(data []byte) (string, error) {
	return string(data), nil
}
