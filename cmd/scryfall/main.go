package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	scryfall "github.com/cschneid/scryfall-api"
	envconfig "github.com/cschneid/scryfall-api/config"
	"github.com/cschneid/scryfall-api/log"
)

func run(ctx context.Context, client *scryfall.Client, config appConfig) (interface{}, error) {
	switch {
	case config.set == "all":
		return client.Sets(ctx)
	case len(config.set) > 0:
		return client.Set(ctx, config.set)
	case len(config.card) > 0:
		mode := scryfall.Fuzzy
		if config.exact {
			mode = scryfall.Exact
		}
		return client.CardNamed(ctx, config.card, mode)
	case len(config.search) > 0:
		return search(ctx, client, config)
	case len(config.autocomplete) > 0:
		return client.Autocomplete(ctx, config.autocomplete)
	case config.random:
		return client.RandomCard(ctx, config.query)
	case len(config.catalog) > 0:
		return catalog(ctx, client, config.catalog)
	case len(config.rulings) > 0:
		return rulings(ctx, client, config.rulings)
	case config.symbology:
		return client.Symbology(ctx)
	case len(config.parseMana) > 0:
		return client.ParseMana(ctx, config.parseMana)
	case len(config.image) > 0:
		return nil, downloadImage(ctx, client, config)
	}

	return nil, errors.New("no command given")
}

func search(ctx context.Context, client *scryfall.Client, config appConfig) (interface{}, error) {
	list, err := client.Search(ctx, config.search, config.searchOptions())
	if err != nil {
		return nil, err
	}

	if !config.all {
		return list, nil
	}

	cards := list.Data
	pages := 1
	for {
		var more bool

		list, more, err = scryfall.NextPage(ctx, client, list)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}

		pages++
		log.Debugf("Retrieved %d cards", len(cards)+len(list.Data))
		cards = append(cards, list.Data...)
	}

	log.Infow("Search complete", "query", config.search, "pages", pages, "cards", len(cards))

	return cards, nil
}

func catalog(ctx context.Context, client *scryfall.Client, name string) (interface{}, error) {
	for _, kind := range scryfall.CatalogKinds {
		if string(kind) == name {
			return client.Catalog(ctx, kind)
		}
	}

	return nil, fmt.Errorf("invalid catalog: %s", name)
}

// rulings accepts either a Scryfall ID or a SET/NUMBER pair.
func rulings(ctx context.Context, client *scryfall.Client, card string) (interface{}, error) {
	if id, err := uuid.Parse(card); err == nil {
		return client.RulingsByID(ctx, id)
	}

	set, number, found := strings.Cut(card, "/")
	if !found || len(set) == 0 || len(number) == 0 {
		return nil, fmt.Errorf("invalid card reference %q: expected a Scryfall ID or SET/NUMBER", card)
	}

	return client.RulingsByCollectorNumber(ctx, set, number)
}

func downloadImage(ctx context.Context, client *scryfall.Client, config appConfig) error {
	id, err := uuid.Parse(config.image)
	if err != nil {
		return fmt.Errorf("invalid Scryfall ID %q: %w", config.image, err)
	}

	face := scryfall.FaceFront
	if config.back {
		face = scryfall.FaceBack
	}

	img, err := client.CardImage(ctx, id, scryfall.ImageVersion(config.imageVersion), face)
	if err != nil {
		return err
	}

	if err := imaging.Save(img, config.output); err != nil {
		return fmt.Errorf("couldn't save %s: %w", config.output, err)
	}

	log.Infof("Saved %s", config.output)

	return nil
}

func newTracerProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)), nil
}

// describeError returns the message and the structured fields logged for a
// failed command.
func describeError(err error) (string, []interface{}) {
	var apiErr *scryfall.APIError
	if errors.As(err, &apiErr) {
		fields := []interface{}{"status", apiErr.Status, "code", apiErr.Code}
		if apiErr.IsAmbiguous() {
			return apiErr.Details + " (try \"-autocomplete\" to list matching names)", fields
		}
		if len(apiErr.Details) == 0 {
			return apiErr.Error(), fields
		}
		return apiErr.Details, fields
	}

	var transportErr *scryfall.TransportError
	if errors.As(err, &transportErr) {
		return err.Error(), []interface{}{"url", transportErr.URL}
	}

	return err.Error(), nil
}

func main() {
	config := parseFlags()

	cfg, err := envconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	var zapConf zap.Config

	if config.debug || cfg.Debug {
		zapConf = zap.NewDevelopmentConfig()
		zapConf.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	} else {
		zapConf = zap.NewProductionConfig()
		zapConf.Encoding = "console"
		zapConf.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		zapConf.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
		zapConf.EncoderConfig.EncodeCaller = nil
	}
	// Keep stdout for the JSON output
	zapConf.OutputPaths = []string{"stderr"}

	// Skip 1 caller, since all log calls will be done from scryfall-api/log
	logger, err := zapConf.Build(zap.AddCallerSkip(1))
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer func() {
		// See https://github.com/uber-go/zap/issues/328
		_ = logger.Sync()
	}()

	log.SetLogger(logger.Sugar())

	options := cfg.ClientOptions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if config.trace {
		tp, err := newTracerProvider()
		if err != nil {
			log.Fatalw("Couldn't set up tracing", "error", err)
		}
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
		options = append(options, scryfall.WithTracerProvider(tp))
	}

	client, err := scryfall.NewClient(options...)
	if err != nil {
		log.Fatalw("Couldn't create the client", "error", err)
	}

	result, err := run(ctx, client, config)
	if err != nil {
		msg, fields := describeError(err)
		log.Errorw(msg, fields...)
		stop()
		os.Exit(1)
	}

	if result == nil {
		return
	}

	var output []byte
	if config.compact {
		output, err = json.Marshal(result)
	} else {
		output, err = json.MarshalIndent(result, "", "  ")
	}
	if err != nil {
		log.Fatalf("Couldn't encode the result: %v", err)
	}

	fmt.Println(string(output))
}
