package ui

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/cat-gallery/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	endpointEntry  *widget.Entry
	maxHeightEntry *widget.Entry
	timeoutEntry   *widget.Entry
	languageSelect *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs after
// valid settings were persisted.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.endpointEntry = widget.NewEntry()
	sd.endpointEntry.SetPlaceHolder(config.DefaultEndpoint)
	sd.endpointEntry.Validator = func(input string) error {
		if input == "" {
			return nil // empty restores the default
		}
		return config.ValidateEndpoint(input)
	}

	sd.maxHeightEntry = widget.NewEntry()
	sd.maxHeightEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinImageHeight, config.MaxImageHeight))

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("0")

	sd.languageCodes = make(map[string]string)
	languageNames := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyEndpoint)+":"),
		sd.endpointEntry,

		widget.NewLabel(sd.localization.GetText(KeyMaxImageHeight)+":"),
		sd.maxHeightEntry,

		widget.NewLabel(sd.localization.GetText(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.endpointEntry.SetText(sd.settings.GetEndpoint())
	sd.maxHeightEntry.SetText(strconv.Itoa(sd.settings.GetMaxImageHeight()))
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Second)))

	current := sd.settings.GetLanguage()
	if name, ok := sd.settings.GetLanguageOptions()[current]; ok {
		sd.languageSelect.SetSelected(name)
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := sd.Save(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// Save validates the form and persists it. Nothing is persisted on error.
func (sd *SettingsDialog) Save() error {
	endpoint := sd.endpointEntry.Text
	if endpoint != "" {
		if err := config.ValidateEndpoint(endpoint); err != nil {
			return fmt.Errorf("%s: %w", sd.localization.GetText(KeyInvalidURL), err)
		}
	}

	maxHeight := 0
	if text := sd.maxHeightEntry.Text; text != "" {
		value, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("%s: %w", sd.localization.GetText(KeyMaxImageHeight), err)
		}
		maxHeight = value
	}

	timeout := -1
	if text := sd.timeoutEntry.Text; text != "" {
		value, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("%s: %w", sd.localization.GetText(KeyRequestTimeout), err)
		}
		timeout = value
	}

	sd.settings.SetEndpoint(endpoint)
	if maxHeight != 0 {
		sd.settings.SetMaxImageHeight(maxHeight)
	}
	if timeout >= 0 {
		sd.settings.SetRequestTimeout(time.Duration(timeout) * time.Second)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	return nil
}
