package domain

// Language is a language supported for translation and speech
type Language struct {
	Code       string
	Name       string // English name, used inside prompts
	NativeName string // shown to users
}

// Languages lists supported languages in display order
var Languages = []Language{
	{Code: "ar", Name: "Arabic", NativeName: "العربية"},
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
}

// LookupLanguage returns the language with the given code
func LookupLanguage(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// IsSupportedLanguage reports whether code is in the supported table
func IsSupportedLanguage(code string) bool {
	_, ok := LookupLanguage(code)
	return ok
}
