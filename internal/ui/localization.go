package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle       = "app_title"
	KeyLoadImage      = "load_image"
	KeyHeading        = "heading"
	KeyImageAlt       = "image_alt"
	KeyEmptyGallery   = "empty_gallery"
	KeyLoading        = "loading"
	KeyLoadFailed     = "load_failed"
	KeySettings       = "settings"
	KeyFile           = "file"
	KeyLanguage       = "language"
	KeyEndpoint       = "endpoint"
	KeyMaxImageHeight = "max_image_height"
	KeyRequestTimeout = "request_timeout"
	KeySave           = "save"
	KeyCancel         = "cancel"
	KeySettingsSaved  = "settings_saved"
	KeyInvalidURL     = "invalid_url"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:       "Cat Gallery",
		KeyLoadImage:      "Load new cat image!",
		KeyHeading:        "Cat Images!",
		KeyImageAlt:       "Cat",
		KeyEmptyGallery:   "No cats yet",
		KeyLoading:        "Loading cat image...",
		KeyLoadFailed:     "Could not load a cat image",
		KeySettings:       "Settings",
		KeyFile:           "File",
		KeyLanguage:       "Language",
		KeyEndpoint:       "Image API URL",
		KeyMaxImageHeight: "Max Image Height",
		KeyRequestTimeout: "Request Timeout (s, 0 = none)",
		KeySave:           "Save",
		KeyCancel:         "Cancel",
		KeySettingsSaved:  "Settings saved successfully!",
		KeyInvalidURL:     "Invalid URL",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:       "Галерея котиков",
		KeyLoadImage:      "Загрузить нового котика!",
		KeyHeading:        "Котики!",
		KeyImageAlt:       "Кот",
		KeyEmptyGallery:   "Котиков пока нет",
		KeyLoading:        "Загрузка котика...",
		KeyLoadFailed:     "Не удалось загрузить котика",
		KeySettings:       "Настройки",
		KeyFile:           "Файл",
		KeyLanguage:       "Язык",
		KeyEndpoint:       "URL API изображений",
		KeyMaxImageHeight: "Макс. высота изображения",
		KeyRequestTimeout: "Тайм-аут запроса (с, 0 = нет)",
		KeySave:           "Сохранить",
		KeyCancel:         "Отмена",
		KeySettingsSaved:  "Настройки успешно сохранены!",
		KeyInvalidURL:     "Неверный URL",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:       "Galeria de Gatos",
		KeyLoadImage:      "Carregar novo gato!",
		KeyHeading:        "Imagens de Gatos!",
		KeyImageAlt:       "Gato",
		KeyEmptyGallery:   "Nenhum gato ainda",
		KeyLoading:        "Carregando gato...",
		KeyLoadFailed:     "Não foi possível carregar um gato",
		KeySettings:       "Configurações",
		KeyFile:           "Arquivo",
		KeyLanguage:       "Idioma",
		KeyEndpoint:       "URL da API de Imagens",
		KeyMaxImageHeight: "Altura Máxima da Imagem",
		KeyRequestTimeout: "Tempo Limite (s, 0 = nenhum)",
		KeySave:           "Salvar",
		KeyCancel:         "Cancelar",
		KeySettingsSaved:  "Configurações salvas com sucesso!",
		KeyInvalidURL:     "URL inválida",
	}
}
