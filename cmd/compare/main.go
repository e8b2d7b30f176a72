// cmd/compare/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/sozercan/platform-compare/internal/client"
)

func main() {
	endpoint := pflag.String("endpoint", "http://localhost:8000/api/compare", "compare endpoint URL")
	timeout := pflag.Duration("timeout", 3*time.Minute, "request timeout")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: compare [flags] <topic or question>\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	form := client.NewForm()
	form.Query = strings.Join(pflag.Args(), " ")
	form.OnChange = func(f *client.Form) {
		if f.Loading {
			fmt.Fprintln(os.Stderr, client.LoadingPlaceholder)
		}
	}

	if err := form.Submit(ctx, client.New(*endpoint)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", form.Error)
		os.Exit(1)
	}

	fmt.Printf("== Conservative Party ==\n%s\n\n== Liberal Party ==\n%s\n", form.Conservative, form.Liberal)
}
