package services

import (
	"strings"
	"unicode/utf16"
)

const (
	gsmBasic     = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"
	gsmExtension = "\f^{}\\[~]|€"

	gsmSinglePart  = 160
	gsmMultiPart   = 153
	ucs2SinglePart = 70
	ucs2MultiPart  = 67
)

// gsmSeptets counts the GSM 03.38 septets of body. ok is false when body
// contains a character outside the basic and extension tables; such
// characters count as one septet.
func gsmSeptets(body string) (septets int, ok bool) {
	ok = true
	for _, r := range body {
		switch {
		case strings.ContainsRune(gsmBasic, r):
			septets++
		case strings.ContainsRune(gsmExtension, r):
			septets += 2
		default:
			septets++
			ok = false
		}
	}
	return septets, ok
}

func ucs2Units(body string) int {
	return len(utf16.Encode([]rune(body)))
}

func parts(length, single, multi int) int {
	if length <= single {
		return 1
	}
	return (length + multi - 1) / multi
}

// smsParts returns the encoding actually used and the number of parts.
// An empty encoding picks gsm when every character fits, ucs2 otherwise.
func smsParts(body, encoding string) (string, int) {
	septets, fits := gsmSeptets(body)

	if encoding == "ucs2" || (encoding == "" && !fits) {
		return "ucs2", parts(ucs2Units(body), ucs2SinglePart, ucs2MultiPart)
	}
	return "gsm", parts(septets, gsmSinglePart, gsmMultiPart)
}
