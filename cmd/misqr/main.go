// Command misqr builds QR-code symbols and their camouflage/ambiguity
// variants: qash pastes a dither texture over a symbol's spare
// error-correction budget, whim finds single-character payload
// substitutes that can be blended into one ambiguously-decodable image.
package main

func main() {
	Execute()
}
