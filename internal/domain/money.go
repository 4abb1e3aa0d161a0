package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatYen formats an amount as ja-JP yen, e.g. ¥1,200.
func FormatYen(n int64) string {
	return message.NewPrinter(language.Japanese).Sprintf("¥%d", n)
}
