package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LayoutData は生年月日の形式 (YYYY-MM-DD) です。
const LayoutData = "2006-01-02"

// conectivos は氏名の中で小文字のまま残す前置詞・接続詞です。
var conectivos = map[string]struct{}{
	"a": {}, "e": {}, "i": {}, "o": {}, "u": {}, "y": {},
	"da": {}, "de": {}, "del": {}, "di": {}, "do": {}, "du": {},
	"das": {}, "dos": {},
}

// NormalizarEmail trims and lower-cases an email address.
func NormalizarEmail(email string) string {
	return cases.Lower(language.BrazilianPortuguese).String(strings.TrimSpace(email))
}

// NormalizarNome title-cases a full name and collapses repeated spaces.
// Connectors such as "da" or "dos" stay lower-case unless they open the name.
//
//	"  ana   DOS santos " → "Ana dos Santos"
func NormalizarNome(nome string) string {
	// cases.Caser は状態を持つため呼び出しごとに生成する
	lower := cases.Lower(language.BrazilianPortuguese)
	title := cases.Title(language.BrazilianPortuguese)
	palavras := strings.Fields(nome)
	for i, p := range palavras {
		p = lower.String(p)
		if _, ok := conectivos[p]; ok && i > 0 {
			palavras[i] = p
			continue
		}
		palavras[i] = title.String(p)
	}
	return strings.Join(palavras, " ")
}

// NormalizarGenero keeps only the first letter, lower-cased. Blank input yields "".
func NormalizarGenero(genero string) string {
	genero = strings.TrimSpace(genero)
	for _, r := range genero {
		return strings.ToLower(string(r))
	}
	return ""
}

// NormalizarData trims a birth date and checks the YYYY-MM-DD layout.
func NormalizarData(data string) (string, bool) {
	data = strings.TrimSpace(data)
	if _, err := time.Parse(LayoutData, data); err != nil {
		return "", false
	}
	return data, true
}
