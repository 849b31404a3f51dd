package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/temirov/nofocus/internal/cli"
	"github.com/temirov/nofocus/internal/utils"
)

const focusedTestsExitStatus = 1

// main is the entry point for the nofocus command.
func main() {
	// NOFOCUS_* variables may come from a .env file in the working directory.
	_ = godotenv.Load()
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		if errors.Is(applicationExecutionError, cli.ErrFocusedTestsFound) {
			loggerInstance.Sync()
			os.Exit(focusedTestsExitStatus)
		}
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
