package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// CVTextLimit cv_text 最多保留的字符数
const CVTextLimit = 20000

// extractPDFText 抽取纯文本并压缩空白；pdf 库遇到坏文件可能 panic
func extractPDFText(data []byte, limit int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	raw, err := io.ReadAll(io.LimitReader(plain, int64(limit)*utf8.UTFMax))
	if err != nil {
		return "", err
	}
	return truncateRunes(strings.Join(strings.Fields(string(raw)), " "), limit), nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n])
}
