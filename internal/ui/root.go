package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/cat-gallery/internal/config"
	"github.com/ytget/cat-gallery/internal/event"
	"github.com/ytget/cat-gallery/internal/fetch"
	"github.com/ytget/cat-gallery/internal/gallery"
	"github.com/ytget/cat-gallery/internal/model"
)

// ThumbnailLoader provides scaled images for gallery references
type ThumbnailLoader interface {
	Load(ctx context.Context, ref model.ImageReference, maxHeight int) (image.Image, error)
	Purge(keep model.GallerySequence)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	controller   *gallery.Controller
	fetcher      fetch.Configurable
	loader       ThumbnailLoader
	broker       *event.Broker
	settings     *config.Settings
	localization *Localization

	loadBtn    *widget.Button
	heading    *widget.Label
	emptyLabel *widget.Label
	galleryBox *fyne.Container
	scroll     *container.Scroll

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// uiMu guards widget state and the fields below it for drivers that run
	// fyne.Do inline on the calling goroutine
	uiMu sync.Mutex

	// Topics are delivered on separate goroutines, so a task can finish
	// before its started event arrives
	started  map[string]bool
	finished map[string]bool

	// notificationGen changes on every show/hide; auto-hide only fires
	// for the notification it was scheduled for
	notificationGen      uint64
	notificationAutoHide time.Duration

	renderedVersion uint64
	rendered        model.GallerySequence
	renderedAlt     string
	renderedHeight  int

	tilesMu sync.RWMutex
	tiles   []*ImageTile

	// lifetime of background thumbnail loads
	ctx    context.Context
	cancel context.CancelFunc

	unsubscribeRender func()
	closeOnce         sync.Once
}

// NewRootUI creates the main UI, applies settings and starts the controller.
// fetcher, loader and broker may be nil.
func NewRootUI(window fyne.Window, app fyne.App, controller *gallery.Controller, fetcher fetch.Configurable, loader ThumbnailLoader, broker *event.Broker) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		controller:   controller,
		fetcher:      fetcher,
		loader:       loader,
		broker:       broker,
		settings:     settings,
		localization: localization,
		ctx:          ctx,
		cancel:       cancel,
		started:      make(map[string]bool),
		finished:     make(map[string]bool),

		notificationAutoHide: NotificationAutoHide,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.applySettings()
	ui.setupUI()
	ui.subscribe()

	window.SetOnClosed(ui.Close)

	// Initial load happens once, right after construction
	controller.Start()

	log.Printf("RootUI initialized")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.loadBtn = widget.NewButton(ui.localization.GetText(KeyLoadImage), ui.onLoadClick)
	ui.loadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.heading = widget.NewLabel(ui.localization.GetText(KeyHeading))
	ui.heading.TextStyle = fyne.TextStyle{Bold: true}
	ui.heading.SizeName = theme.SizeNameHeadingText

	// Logo is optional; fall back to the settings button alone
	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, nil, ui.loadBtn)

	// Notification panel under the button (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.emptyLabel = widget.NewLabel(ui.emptyGalleryText())
	ui.emptyLabel.Importance = widget.LowImportance

	ui.galleryBox = container.NewVBox()
	ui.scroll = container.NewVScroll(container.NewVBox(ui.emptyLabel, ui.galleryBox))

	top := container.NewVBox(topPanel, ui.heading, ui.notificationContainer)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.scroll))

	log.Printf("UI setup completed successfully")
}

// subscribe connects the controller and broker to the UI
func (ui *RootUI) subscribe() {
	ui.unsubscribeRender = ui.controller.OnRender(ui.onRender)

	if ui.broker == nil {
		return
	}
	subscriptions := map[event.Topic]func(*model.FetchTask){
		event.FetchStarted:   ui.onFetchStarted,
		event.FetchCompleted: ui.onFetchCompleted,
		event.FetchFailed:    ui.onFetchFailed,
	}
	for topic, handler := range subscriptions {
		if err := ui.broker.SubscribeTask(topic, handler); err != nil {
			log.Printf("Failed to subscribe to %s: %v", topic, err)
		}
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// applySettings pushes persisted settings into the services
func (ui *RootUI) applySettings() {
	ui.controller.SetMaxHeight(ui.settings.GetMaxImageHeight())
	ui.controller.SetAltText(ui.localization.GetText(KeyImageAlt))

	if ui.fetcher != nil {
		ui.fetcher.SetEndpoint(ui.settings.GetEndpoint())
		ui.fetcher.SetTimeout(ui.settings.GetRequestTimeout())
	}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.loadBtn.SetText(ui.localization.GetText(KeyLoadImage))
	ui.heading.SetText(ui.localization.GetText(KeyHeading))
	ui.emptyLabel.SetText(ui.emptyGalleryText())

	// alt text lives in the descriptors, so re-derive them
	ui.controller.SetAltText(ui.localization.GetText(KeyImageAlt))
	descs := ui.controller.Descriptors()
	ui.renderGallery(ui.controller.Version(), descs)
}

func (ui *RootUI) emptyGalleryText() string {
	return IconCat + " " + ui.localization.GetText(KeyEmptyGallery)
}

// do runs fn on the UI goroutine holding uiMu
func (ui *RootUI) do(fn func()) {
	fyne.Do(func() {
		ui.uiMu.Lock()
		defer ui.uiMu.Unlock()
		fn()
	})
}

// doAndWait is do that returns once fn has run
func (ui *RootUI) doAndWait(fn func()) {
	fyne.DoAndWait(func() {
		ui.uiMu.Lock()
		defer ui.uiMu.Unlock()
		fn()
	})
}

// onLoadClick handles the load button click
func (ui *RootUI) onLoadClick() {
	log.Printf("Load button clicked (%d requests in flight)", ui.controller.Pending())
	ui.controller.LoadImageAsync()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.applySettings()
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onRender receives descriptors from the controller on any goroutine
func (ui *RootUI) onRender(descs []gallery.Descriptor) {
	// stable while the callback runs, see Controller.Version
	version := ui.controller.Version()
	ui.do(func() {
		ui.renderGallery(version, descs)
	})
}

// renderGallery rebuilds the image list from descs. Renders older than the
// last one shown are dropped, and an identical list keeps the existing tiles.
// Must run on the UI goroutine.
func (ui *RootUI) renderGallery(version uint64, descs []gallery.Descriptor) {
	if version < ui.renderedVersion {
		return
	}
	ui.renderedVersion = version

	keep := make(model.GallerySequence, 0, len(descs))
	for _, desc := range descs {
		keep = append(keep, desc.Source)
	}
	alt, maxHeight := ui.renderedAlt, ui.renderedHeight
	if len(descs) > 0 {
		alt, maxHeight = descs[0].Alt, descs[0].MaxHeight
	}
	if ui.rendered != nil && keep.Equal(ui.rendered) && alt == ui.renderedAlt && maxHeight == ui.renderedHeight {
		return
	}
	ui.rendered, ui.renderedAlt, ui.renderedHeight = keep, alt, maxHeight

	tiles := make([]*ImageTile, 0, len(descs))
	objects := make([]fyne.CanvasObject, 0, len(descs))
	for _, desc := range descs {
		tile := NewImageTile(desc)
		tiles = append(tiles, tile)
		objects = append(objects, tile)
		ui.loadThumbnail(tile)
	}

	ui.tilesMu.Lock()
	ui.tiles = tiles
	ui.tilesMu.Unlock()

	ui.galleryBox.Objects = objects
	ui.galleryBox.Refresh()
	if len(descs) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}

	if ui.loader != nil {
		ui.loader.Purge(keep)
	}
}

// loadThumbnail fetches the tile's image in the background
func (ui *RootUI) loadThumbnail(tile *ImageTile) {
	if ui.loader == nil {
		return
	}
	desc := tile.Descriptor()

	go func() {
		img, err := ui.loader.Load(ui.ctx, desc.Source, desc.MaxHeight)
		if err != nil {
			if ui.ctx.Err() == nil {
				log.Printf("Failed to load thumbnail %s: %v", desc.Source, err)
				ui.do(tile.ShowError)
			}
			return
		}
		ui.do(func() {
			tile.SetImage(img)
		})
	}()
}

// Tiles returns the currently rendered tiles
func (ui *RootUI) Tiles() []*ImageTile {
	ui.tilesMu.RLock()
	defer ui.tilesMu.RUnlock()
	tiles := make([]*ImageTile, len(ui.tiles))
	copy(tiles, ui.tiles)
	return tiles
}

// onFetchStarted shows the loading notification
func (ui *RootUI) onFetchStarted(task *model.FetchTask) {
	ui.do(func() {
		if ui.finished[task.ID] {
			delete(ui.finished, task.ID)
			return
		}
		ui.started[task.ID] = true
		ui.showNotification(ui.localization.GetText(KeyLoading), true)
	})
}

// markFinished records that task has finished. Must run on the UI goroutine.
func (ui *RootUI) markFinished(task *model.FetchTask) {
	if ui.started[task.ID] {
		delete(ui.started, task.ID)
		return
	}
	ui.finished[task.ID] = true
}

// onFetchCompleted hides the notification once nothing is in flight
func (ui *RootUI) onFetchCompleted(task *model.FetchTask) {
	ui.do(func() {
		ui.markFinished(task)
		if len(ui.started) == 0 && ui.controller.Pending() == 0 {
			ui.hideNotification()
		}
	})
}

// onFetchFailed surfaces the error for a while; the load button doubles as retry
func (ui *RootUI) onFetchFailed(task *model.FetchTask) {
	message := ui.localization.GetText(KeyLoadFailed)
	if task.LastError != "" {
		message += ErrorSeparator + task.LastError
	}

	ui.do(func() {
		ui.markFinished(task)
		gen := ui.showNotification(IconError+" "+message, false)
		time.AfterFunc(ui.notificationAutoHide, func() {
			ui.do(func() {
				if ui.ctx.Err() == nil && ui.notificationGen == gen {
					ui.hideNotification()
				}
			})
		})
	})
}

// showNotification displays a message in the notification panel and returns
// its generation. When spinning is true, a spinner is shown to indicate
// background activity. Must run on the UI goroutine.
func (ui *RootUI) showNotification(message string, spinning bool) uint64 {
	ui.notificationGen++
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
	return ui.notificationGen
}

// hideNotification hides the notification panel. Must run on the UI goroutine.
func (ui *RootUI) hideNotification() {
	ui.notificationGen++
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// NotificationText returns the text currently in the notification panel
func (ui *RootUI) NotificationText() string {
	var text string
	ui.doAndWait(func() {
		text = ui.notificationLabel.Text
	})
	return text
}

// NotificationVisible reports whether the notification panel is shown
func (ui *RootUI) NotificationVisible() bool {
	var visible bool
	ui.doAndWait(func() {
		visible = ui.notificationContainer.Visible()
	})
	return visible
}

// Close stops background work and closes the controller
func (ui *RootUI) Close() {
	ui.closeOnce.Do(func() {
		ui.cancel()
		if ui.unsubscribeRender != nil {
			ui.unsubscribeRender()
		}
		ui.controller.Close()
		if ui.broker != nil {
			ui.broker.Close()
		}
		log.Printf("RootUI closed")
	})
}
