// Command coachdesk-authorize runs the one-time out-of-band Google Drive
// authorization: it prints the consent URL, reads the resulting code from
// stdin, and caches the token for the server to use.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/meltforce/coachdesk/internal/config"
	"github.com/meltforce/coachdesk/internal/export"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if !cfg.Drive.Enabled {
		fmt.Fprintln(os.Stderr, "drive export is disabled in config; enable it first")
		os.Exit(1)
	}

	auth := export.NewAuthorizer(cfg.Drive.ClientID, cfg.Drive.ClientSecret, cfg.Drive.TokenFile)
	if auth.Authorized() {
		fmt.Println("A cached token already exists at", cfg.Drive.TokenFile)
		fmt.Print("Re-authorize anyway? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			return
		}
	}

	fmt.Println("Open the following URL in a browser and approve access:")
	fmt.Println()
	fmt.Println("  " + auth.AuthURL())
	fmt.Println()
	fmt.Print("Paste the authorization code: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading code:", err)
		os.Exit(1)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		fmt.Fprintln(os.Stderr, "no code provided")
		os.Exit(1)
	}

	if err := auth.Exchange(context.Background(), code); err != nil {
		fmt.Fprintln(os.Stderr, "code exchange failed:", err)
		os.Exit(1)
	}
	fmt.Println("Token saved to", cfg.Drive.TokenFile)
}
