package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/forest-guardian/landcover-samples/internal/notification"
)

type menuOption struct {
	title   string
	handler func()
}

var (
	vectorExts = []string{".shp", ".geojson", ".json", ".gpkg"}
	rasterExts = []string{".tif", ".tiff"}
)

// ShowMenu displays the main menu and handles user input until exit
func ShowMenu() {
	menuOptions := []menuOption{
		{"Build the forest mask from vegetation formations", BuildForestMask},
		{"Curate sample polygons and rasterize their classes", RasterizeSamples},
		{"Extract samples from an image and a label raster", ExtractROISamples},
		{"Extract samples at point locations", ExtractPointSamples},
		{"Report the sample distribution per class", SampleDistribution},
		{"Evaluate a prediction raster against a label raster", EvaluatePrediction},
		{"Exit the application", nil},
	}

	for {
		infoColor.Fprintln(color.Output, "===================")
		for i, opt := range menuOptions {
			infoColor.Fprintf(color.Output, "%d. %s\n", i+1, opt.title)
		}
		PrintInfo("Please enter your choice: ")
		if _, err := input.Peek(1); errors.Is(err, io.EOF) {
			fmt.Println("\nExiting...")
			return
		}
		choice, err := ReadInt("", 1, len(menuOptions))
		if err != nil {
			PrintError(err.Error())
			continue
		}
		opt := menuOptions[choice-1]
		if opt.handler == nil {
			fmt.Println("Exiting...")
			return
		}
		opt.handler()
	}
}

func fail(action string, err error) {
	PrintError(fmt.Sprintf("%s: %s", action, err.Error()))
	if nerr := notification.SendDiscordErrorNotification(fmt.Sprintf("%s: %s", action, err.Error())); nerr != nil {
		PrintError("failed to send notification: " + nerr.Error())
	}
}

func succeed(message string) {
	PrintSuccess(message)
	if err := notification.SendDiscordSuccessNotification(message); err != nil {
		PrintError("failed to send notification: " + err.Error())
	}
}
