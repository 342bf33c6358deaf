package service

import "strings"

const maskChar = "*"

// Длины открытых префикса и суффикса номера счета при маскировании
const (
	accountMaskPrefix = 3
	accountMaskSuffix = 2
)

// MaskAccountNumber маскирует номер счета: первые 3 и последние 2 символа
// остаются открытыми, середина заменяется на '*'.
// "123-456-789" -> "123******89"
func MaskAccountNumber(accountNumber string) string {
	runes := []rune(accountNumber)
	if len(runes) <= accountMaskPrefix+accountMaskSuffix {
		return strings.Repeat(maskChar, len(runes))
	}

	var b strings.Builder
	b.WriteString(string(runes[:accountMaskPrefix]))
	b.WriteString(strings.Repeat(maskChar, len(runes)-accountMaskPrefix-accountMaskSuffix))
	b.WriteString(string(runes[len(runes)-accountMaskSuffix:]))
	return b.String()
}

// MaskName маскирует отображаемое имя: открывается только первый символ.
// "홍길동" -> "홍**"
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0]) + strings.Repeat(maskChar, len(runes)-1)
}
