package main

import (
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/cat-gallery/internal/config"
	"github.com/ytget/cat-gallery/internal/event"
	"github.com/ytget/cat-gallery/internal/fetch"
	"github.com/ytget/cat-gallery/internal/gallery"
	"github.com/ytget/cat-gallery/internal/thumbnail"
	"github.com/ytget/cat-gallery/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.cat-gallery"
	AppName = "Cat Gallery"
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewGalleryTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services; RootUI applies persisted settings to them
	fetchSvc := fetch.NewService(config.DefaultEndpoint, config.DefaultRequestTimeout)
	loader := thumbnail.NewLoader(&http.Client{})
	broker := event.NewBroker(event.DefaultQueueSize)
	controller := gallery.NewController(fetchSvc, broker)

	// Create and setup UI; this triggers the initial load
	ui.NewRootUI(myWindow, myApp, controller, fetchSvc, loader, broker)

	myWindow.ShowAndRun()
}
