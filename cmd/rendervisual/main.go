// Command rendervisual renders one visual to local storage and prints the
// result as JSON. It needs no database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"contentplanner/internal/domain"
	"contentplanner/internal/infra"
	"contentplanner/internal/render"
	"contentplanner/internal/storage"
)

func main() {
	var (
		bgFlag       string
		headlineFlag string
		subFlag      string
		ctaFlag      string
		formatFlag   string
		styleFlag    string
		primaryFlag  string
		secondFlag   string
		accentFlag   string
		logoFlag     string
		fontFlag     string
		brandFlag    string
		localeFlag   string
		postFlag     string
		planFlag     string
		outFlag      string
		timeoutFlag  time.Duration
		verboseFlag  bool
	)

	flag.StringVar(&bgFlag, "bg", "", "background image URL or /generated/... path (required)")
	flag.StringVar(&headlineFlag, "headline", "", "headline text")
	flag.StringVar(&subFlag, "sub", "", "subtitle text")
	flag.StringVar(&ctaFlag, "cta", "", "call to action text")
	flag.StringVar(&formatFlag, "format", "IG_POST", "IG_POST, IG_CAROUSEL or IG_STORY")
	flag.StringVar(&styleFlag, "style", "LIFESTYLE", "LIFESTYLE, INFOGRAPHIC, PRODUCT or EDUCATIONAL")
	flag.StringVar(&primaryFlag, "primary", "", "primary brand color (hex)")
	flag.StringVar(&secondFlag, "secondary", "", "secondary brand color (hex)")
	flag.StringVar(&accentFlag, "accent", "", "accent brand color (hex)")
	flag.StringVar(&logoFlag, "logo", "", "logo URL or data URL")
	flag.StringVar(&fontFlag, "font", "", "brand font family")
	flag.StringVar(&brandFlag, "brand", "", "company name, used for the monogram")
	flag.StringVar(&localeFlag, "locale", "", "text locale for upper-casing (e.g. tr, id)")
	flag.StringVar(&postFlag, "post", "cli", "post ID used in the output path")
	flag.StringVar(&planFlag, "plan", "", "plan ID used in the output path")
	flag.StringVar(&outFlag, "out", "", "storage root (defaults to STORAGE_PATH)")
	flag.DurationVar(&timeoutFlag, "timeout", 0, "overall render timeout (0 keeps the fetch timeout only)")
	flag.BoolVar(&verboseFlag, "v", false, "log progress to stderr")
	flag.Parse()

	if strings.TrimSpace(bgFlag) == "" {
		exitWithError(errors.New("-bg is required"))
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	storagePath := cfg.StoragePath
	if strings.TrimSpace(outFlag) != "" {
		storagePath = outFlag
	}

	logger := zerolog.Nop()
	if verboseFlag {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	store, err := storage.NewFileStore(storagePath, cfg.PublicBaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("configure storage: %w", err))
	}
	fonts, err := render.NewFontSet(cfg.FontDir)
	if err != nil {
		exitWithError(err)
	}
	composer, err := render.NewComposer(render.Options{
		Fetcher: render.NewFetcher(render.FetcherOptions{
			Timeout:  cfg.FetchTimeout,
			MaxBytes: cfg.MaxFetchBytes,
			Local:    store,
		}),
		Store:     store,
		Fonts:     fonts,
		MaxPixels: cfg.MaxImagePixels,
		Logger:    logger,
	})
	if err != nil {
		exitWithError(err)
	}

	req := render.Request{
		PostID:        postFlag,
		PlanID:        planFlag,
		Format:        formatFlag,
		Style:         styleFlag,
		BackgroundURL: bgFlag,
		Headline:      headlineFlag,
		Subtitle:      subFlag,
		CTA:           ctaFlag,
		Colors:        render.BrandColors{Primary: primaryFlag, Secondary: secondFlag, Accent: accentFlag},
		FontFamily:    fontFlag,
		BrandInitial:  domain.BrandInitial(brandFlag),
		Locale:        localeFlag,
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(logoFlag)), "data:") {
		req.LogoData = logoFlag
	} else {
		req.LogoURL = logoFlag
	}

	ctx := context.Background()
	if timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeoutFlag)
		defer cancel()
	}

	res := composer.Render(ctx, req)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
	if !res.Rendered() {
		exitWithError(fmt.Errorf("render fell back to background: %s", res.Reason))
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
