package ui

import "testing"

func TestLocalization_DefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language 'en', got %s", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyLoadImage); got != "Load new cat image!" {
		t.Errorf("Expected button text 'Load new cat image!', got %q", got)
	}
	if got := l.GetText(KeyHeading); got != "Cat Images!" {
		t.Errorf("Expected heading 'Cat Images!', got %q", got)
	}
	if got := l.GetText(KeyImageAlt); got != "Cat" {
		t.Errorf("Expected alt text 'Cat', got %q", got)
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"ru", "ru"},
		{"pt", "pt"},
		{"system", "en"},
		{"xx", "en"}, // unknown languages are ignored
	}

	for _, test := range tests {
		l := NewLocalization()
		l.SetLanguage(test.lang)
		if got := l.GetCurrentLanguage(); got != test.expected {
			t.Errorf("SetLanguage(%q): current = %q, expected %q", test.lang, got, test.expected)
		}
	}
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("Language %s has no texts", lang)
			continue
		}
		for key := range english {
			if _, found := texts[key]; !found {
				t.Errorf("Language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")
	delete(l.texts["ru"], KeyHeading)

	if got := l.GetText(KeyHeading); got != "Cat Images!" {
		t.Errorf("Expected English fallback, got %q", got)
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got %q", got)
	}
}
