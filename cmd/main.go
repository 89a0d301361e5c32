package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/austral-geolab/landchange-api-poc/internal/notification"
	"github.com/austral-geolab/landchange-api-poc/internal/ui"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
)

func printBanner() {
	figure1 := figure.NewFigure("Land", "isometric1", true)
	figure2 := figure.NewFigure("Change", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func initCLI() {
	defer func() {
		if r := recover(); r != nil {
			// Get the function, file, and line where panic occurred
			pc, file, line, ok := runtime.Caller(3) // 3 levels up is often the panic source
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
			fmt.Printf("\033[31mLocation: %s\033[0m\n", location)
			fmt.Printf("\033[31mPlease check the input and try again.\033[0m\n")
			fmt.Printf("\033[31mExiting...\033[0m\n")

			stack := debug.Stack()
			errMessage := fmt.Sprintf("LandChange CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			err := notification.SendDiscordErrorNotification(errMessage)
			if err != nil {
				fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
			}
		}
	}()
	printBanner()

	ui.ShowMenu()
}

func main() {
	err := godotenv.Load("../../.env")
	if err != nil {
		err := godotenv.Load("../.env")
		if err != nil {
			fmt.Println("\033[33mNo .env file found, relying on the environment\033[0m")
		}
	}

	initCLI()
}
