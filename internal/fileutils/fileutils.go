// Package fileutils handles the byte-level quirks of bank export files:
// byte-order marks, legacy Windows-1251 encoding and mixed line endings.
package fileutils

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeStatement converts raw statement bytes to normalized UTF-8 text.
// A leading BOM is stripped; content that is not valid UTF-8 is assumed to be
// Windows-1251, the encoding national bank text exports still ship in.
// CRLF and bare CR line endings are normalized to LF.
func DecodeStatement(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)

	var text string
	if utf8.Valid(content) {
		text = string(content)
	} else {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(content)
		if err != nil {
			// Undecodable bytes degrade to a lossy UTF-8 view; the format
			// detector decides whether anything is recognizable.
			text = string(content)
		} else {
			text = string(decoded)
		}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// Ext returns the lowercased file extension without the leading dot.
func Ext(fileName string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
}
