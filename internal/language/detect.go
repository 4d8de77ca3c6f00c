// Package language names the language of free text for the ranking
// engine's language-tagged embedding input.
package language

import "github.com/pemistahl/lingua-go"

// Namer reports the English name of a text's language, when detectable.
type Namer interface {
	Name(text string) (string, bool)
}

// Detector is the lingua-backed Namer.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over all supported languages. Construction
// is expensive; build once and reuse.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Name implements Namer, returning names like "English" or "French".
func (d *Detector) Name(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}
