package cli

import (
	"fmt"

	"github.com/costsynth/costsynth-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
	  /$$$$$$                        /$$       /$$$$$$$$                        /$$     /$$
	 /$$__  $$                      | $$      /$$_____/                       | $$    | $$
	| $$  \__/  /$$$$$$   /$$$$$$$ /$$$$$$   | $$$$$$  /$$   /$$ /$$$$$$$  /$$$$$$   | $$$$$$$
	| $$       /$$__  $$ /$$_____/|_  $$_/   \____  $$| $$  | $$| $$__  $$|_  $$_/   | $$__  $$
	| $$      | $$  \ $$|  $$$$$$   | $$     /$$  \ $$| $$  | $$| $$  \ $$  | $$     | $$  \ $$
	| $$    $$| $$  | $$ \____  $$  | $$ /$$| $$  | $$| $$  | $$| $$  | $$  | $$ /$$ | $$  | $$
	|  $$$$$$/|  $$$$$$/ /$$$$$$$/  |  $$$$/|  $$$$$$/|  $$$$$$$| $$  | $$  |  $$$$/ | $$  | $$
	 \______/  \______/ |_______/    \___/   \______/  \____  $$|__/  |__/   \___/   |__/  |__/
	                                                   /$$  | $$
	                                                  |  $$$$$$/
	                                                   \______/
	`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("costsynth (v%s)", formattedVersion)))
}
