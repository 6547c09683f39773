// Пакет rand. Случайные строки для коротких кодов
package rand

import (
	"math/rand/v2"
)

// Набор символов по умолчанию: 26 строчных, 26 заглавных и 10 цифр
const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Charset возвращает набор символов по умолчанию
func Charset() string {
	return charset
}

// StringWithCharset возвращает случайную строку из определенного набора символов.
// Символы выбираются равновероятно. Безопасна для конкурентного вызова.
func StringWithCharset(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}

// String возвращает случайную строку из набора по умолчанию
func String(length int) string {
	return StringWithCharset(length, charset)
}
