package cli

import (
	"fmt"

	"github.com/diillson/aws-lambda-inventory-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$        /$$$$$$  /$$      /$$ /$$$$$$$  /$$$$$$$   /$$$$$$
        | $$       /$$__  $$| $$$    /$$$| $$__  $$| $$__  $$ /$$__  $$
        | $$      | $$  \ $$| $$$$  /$$$$| $$  \ $$| $$  \ $$| $$  \ $$
        | $$      | $$$$$$$$| $$ $$/$$ $$| $$$$$$$ | $$  | $$| $$$$$$$$
        | $$      | $$__  $$| $$  $$$| $$| $$__  $$| $$  | $$| $$__  $$
        | $$      | $$  | $$| $$\  $ | $$| $$  \ $$| $$  | $$| $$  | $$
        | $$$$$$$$| $$  | $$| $$ \/  | $$| $$$$$$$/| $$$$$$$/| $$  | $$
        |________/|__/  |__/|__/     |__/|_______/ |_______/ |__/  |__/

                           I N V E N T O R Y
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("AWS Lambda Runtime Inventory CLI (v%s)", formattedVersion)))
}
