package cli

import (
	"fmt"
	"io"

	"github.com/diillson/aws-cost-report-go/pkg/console"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

const banner = `
    ___ _       _______    ______           __     ____                        __
   /   | |     / / ___/   / ____/___  _____/ /_   / __ \___  ____  ____  _____/ /_
  / /| | | /| / /\__ \   / /   / __ \/ ___/ __/  / /_/ / _ \/ __ \/ __ \/ ___/ __/
 / ___ | |/ |/ /___/ /  / /___/ /_/ (__  ) /_   / _, _/  __/ /_/ / /_/ / /  / /_
/_/  |_|__/|__//____/   \____/\____/____/\__/  /_/ |_|\___/ .___/\____/_/   \__/
                                                         /_/
`

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	fmt.Fprintln(w, console.BoldRed(banner))
	fmt.Fprintln(w, console.BoldBlue(fmt.Sprintf("AWS Cost Report CLI (v%s)", version.FormatVersion())))
}
