package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/notification"
	"github.com/forest-guardian/landcover-samples/internal/properties"
	"github.com/forest-guardian/landcover-samples/internal/ui"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func printBanner() {
	figure1 := figure.NewFigure("Landcover", "isometric1", true)
	figure2 := figure.NewFigure("Samples", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func loadEnv() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
	bannercolor.Yellow("No .env file found, using the process environment")
}

func initCLI() {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			bannercolor.Red("\nPANIC: %v", r)
			bannercolor.Red("Please check the input and try again.")
			bannercolor.Red("Exiting...")
			log.Error("panic", zap.Any("recovered", r), zap.ByteString("stack", stack))

			errMessage := fmt.Sprintf("Landcover samples CLI panic:\n\n%v\n\nStack trace:\n%s", r, stack)
			if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
				bannercolor.Red("Failed to send notification: %s", err.Error())
			}
			log.Sync()
			os.Exit(1)
		}
	}()
	printBanner()
	ui.ShowMenu()
}

func main() {
	loadEnv()
	if err := log.Init(properties.LogLevel()); err != nil {
		bannercolor.Red("Invalid LOG_LEVEL %q: %s", properties.LogLevel(), err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	godal.RegisterAll()
	initCLI()
}
