package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	scryfall "github.com/cschneid/scryfall-api"
)

// includes is a repeatable flag enabling the include_* search options.
type includes map[string]bool

var availableIncludes = []string{"extras", "multilingual", "variations"}

func (i *includes) String() string {
	keys := make([]string, 0, len(*i))

	for k := range *i {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return strings.Join(keys, ",")
}

func (i *includes) Set(value string) error {
	for _, include := range availableIncludes {
		if value == include {
			(*i)[value] = true
			return nil
		}
	}

	return errors.New("invalid include value: " + value)
}

func (i includes) apply(opts *scryfall.SearchOptions) {
	opts.IncludeExtras = i["extras"]
	opts.IncludeMultilingual = i["multilingual"]
	opts.IncludeVariations = i["variations"]
}

func joinValues[T ~string](values []T) string {
	strs := make([]string, 0, len(values))

	for _, v := range values {
		strs = append(strs, string(v))
	}

	return strings.Join(strs, ", ")
}

var (
	availableOrders = []scryfall.Order{
		scryfall.OrderName, scryfall.OrderSet, scryfall.OrderReleased,
		scryfall.OrderRarity, scryfall.OrderColor, scryfall.OrderUSD,
		scryfall.OrderTIX, scryfall.OrderEUR, scryfall.OrderCMC,
		scryfall.OrderPower, scryfall.OrderToughness, scryfall.OrderEDHREC,
		scryfall.OrderArtist,
	}
	availableUniques    = []scryfall.UniqueMode{scryfall.UniqueCards, scryfall.UniqueArt, scryfall.UniquePrints}
	availableDirections = []scryfall.Direction{scryfall.DirAuto, scryfall.DirAsc, scryfall.DirDesc}
	availableVersions   = []scryfall.ImageVersion{
		scryfall.ImageSmall, scryfall.ImageNormal, scryfall.ImageLarge,
		scryfall.ImagePNG, scryfall.ImageArtCrop, scryfall.ImageBorderCrop,
	}
)

type appConfig struct {
	set          string
	card         string
	exact        bool
	search       string
	order        string
	unique       string
	dir          string
	page         int
	all          bool
	include      includes
	autocomplete string
	random       bool
	catalog      string
	rulings      string
	symbology    bool
	parseMana    string
	image        string
	imageVersion string
	back         bool
	output       string
	compact      bool
	debug        bool
	trace        bool
	query        string
}

// commands counts the mutually exclusive commands set on the command line.
func (c appConfig) commands() int {
	count := 0

	for _, set := range []bool{
		len(c.set) > 0,
		len(c.card) > 0,
		len(c.search) > 0,
		len(c.autocomplete) > 0,
		c.random,
		len(c.catalog) > 0,
		len(c.rulings) > 0,
		c.symbology,
		len(c.parseMana) > 0,
		len(c.image) > 0,
	} {
		if set {
			count++
		}
	}

	return count
}

func usageError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n\n", args...)
	flag.Usage()
	os.Exit(1)
}

func parseFlags() appConfig {
	var (
		config      appConfig
		showVersion bool
	)

	config.include = make(includes)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [FLAGS] [QUERY]\n\nFlags:\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	flag.StringVar(&config.set, "set", "", "retrieve a set from its code (use \"all\" to list every set)")
	flag.StringVar(&config.card, "card", "", "retrieve a card from its name (fuzzy match unless \"-exact\" is set)")
	flag.BoolVar(&config.exact, "exact", false, "only match the exact card name with \"-card\"")
	flag.StringVar(&config.search, "search", "", "search cards using the Scryfall syntax")
	flag.StringVar(&config.order, "order", string(scryfall.OrderName), "sort order of \"-search\". Choose from: "+joinValues(availableOrders))
	flag.StringVar(&config.unique, "unique", string(scryfall.UniqueCards), "duplicate handling of \"-search\". Choose from: "+joinValues(availableUniques))
	flag.StringVar(&config.dir, "dir", string(scryfall.DirAuto), "sort direction of \"-search\". Choose from: "+joinValues(availableDirections))
	flag.IntVar(&config.page, "page", 0, "page of \"-search\" to retrieve")
	flag.BoolVar(&config.all, "all", false, "retrieve every page of \"-search\"")
	flag.Var(&config.include, "include", "include more cards in \"-search\" (can have multiple). Choose from: "+strings.Join(availableIncludes, ", "))
	flag.StringVar(&config.autocomplete, "autocomplete", "", "list card names matching a prefix")
	flag.BoolVar(&config.random, "random", false, "retrieve a random card, optionally matching QUERY")
	flag.StringVar(&config.catalog, "catalog", "", "retrieve a catalog. Choose from: "+joinValues(scryfall.CatalogKinds))
	flag.StringVar(&config.rulings, "rulings", "", "list the rulings of a card, from its Scryfall ID or SET/NUMBER")
	flag.BoolVar(&config.symbology, "symbology", false, "list every card symbol")
	flag.StringVar(&config.parseMana, "parse-mana", "", "normalize a mana cost")
	flag.StringVar(&config.image, "image", "", "download the image of a card from its Scryfall ID (requires \"-output\")")
	flag.StringVar(&config.imageVersion, "image-version", string(scryfall.ImageLarge), "image version of \"-image\". Choose from: "+joinValues(availableVersions))
	flag.BoolVar(&config.back, "back", false, "download the back face with \"-image\"")
	flag.StringVar(&config.output, "output", "", "destination file of \"-image\" (the format is inferred from the extension)")
	flag.BoolVar(&config.compact, "compact", false, "don't indent the resulting JSON")
	flag.BoolVar(&showVersion, "version", false, "display the version information")
	flag.BoolVar(&config.debug, "debug", false, "enable debug logging")
	flag.BoolVar(&config.trace, "trace", false, "print OpenTelemetry spans to stderr")

	flag.Parse()

	if showVersion {
		displayBuildInformation()
		os.Exit(0)
	}

	switch n := config.commands(); {
	case n == 0:
		usageError("A command is required")
	case n > 1:
		usageError("Only one command can be used at a time")
	}

	if flag.NArg() > 1 || (flag.NArg() == 1 && !config.random) {
		usageError("A query can only be used with \"-random\"")
	}
	if flag.NArg() == 1 {
		config.query = flag.Args()[0]
	}

	if len(config.image) > 0 && len(config.output) == 0 {
		usageError("\"-output\" is required with \"-image\"")
	}

	if config.all && config.page > 0 {
		usageError("\"-all\" and \"-page\" cannot be used at the same time")
	}

	return config
}

func (c appConfig) searchOptions() scryfall.SearchOptions {
	opts := scryfall.SearchOptions{
		Unique: scryfall.UniqueMode(c.unique),
		Order:  scryfall.Order(c.order),
		Dir:    scryfall.Direction(c.dir),
		Page:   c.page,
	}
	c.include.apply(&opts)

	return opts
}
