package command

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/libros-go/internal/core/domain"
)

// BookCommand returns the book command.
func BookCommand() *cli.Command {
	return &cli.Command{
		Name:    "book",
		Aliases: []string{"books"},
		Usage:   "Browse and edit the catalog",
		Subcommands: []*cli.Command{
			bookListCommand(),
			bookGetCommand(),
			bookSearchCommand(),
			bookCreateCommand(),
			bookUpdateCommand(),
			bookDeleteCommand(),
		},
	}
}

func bookListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all books",
		Action:  runBookList,
	}
}

func bookGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one book",
		ArgsUsage: "CODE",
		Action:    runBookGet,
	}
}

func bookSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find books by code or by category",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "code",
				Usage: "Exact book code",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Category name",
			},
		},
		Action: runBookSearch,
	}
}

// bookFieldFlags are shared by create and update. Numbers are taken as
// text and converted here so bad input gets a catalog-style error.
func bookFieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"titulo"}, Usage: "Title"},
		&cli.StringFlag{Name: "author", Aliases: []string{"autor"}, Usage: "Author"},
		&cli.StringFlag{Name: "year", Aliases: []string{"anio"}, Usage: "Publication year"},
		&cli.StringFlag{Name: "category", Aliases: []string{"categoria"}, Usage: "Category"},
		&cli.StringFlag{Name: "pages", Aliases: []string{"num-paginas"}, Usage: "Page count"},
	}
}

func bookCreateCommand() *cli.Command {
	return &cli.Command{
		Name:   "create",
		Usage:  "Add a book; the server assigns its code",
		Flags:  bookFieldFlags(),
		Action: runBookCreate,
	}
}

func bookUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace a book's fields; omitted flags keep the current value",
		ArgsUsage: "CODE",
		Flags:     bookFieldFlags(),
		Action:    runBookUpdate,
	}
}

func bookDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a book",
		ArgsUsage: "CODE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip confirmation",
			},
		},
		Action: runBookDelete,
	}
}

func runBookList(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, rt)
	defer cancel()

	var books []domain.Book
	err = withSpinner(c, "Loading catalog...", func() error {
		books, err = rt.Catalog.List(ctx)
		return err
	})
	if err != nil {
		return explain(err)
	}
	return printResult(c, books)
}

func runBookGet(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	code, err := codeArg(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, rt)
	defer cancel()

	book, err := rt.Catalog.Get(ctx, code)
	if err != nil {
		return explain(err)
	}
	return printResult(c, book)
}

func runBookSearch(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	code, category := c.String("code"), c.String("category")
	if (code == "") == (category == "") {
		return domain.ErrInvalidArgument.WithDetails("specify exactly one of --code or --category")
	}

	ctx, cancel := requestContext(c, rt)
	defer cancel()

	if code != "" {
		book, err := rt.Catalog.Get(ctx, code)
		if err != nil {
			return explain(err)
		}
		return printResult(c, []domain.Book{*book})
	}

	books, err := rt.Catalog.ListByCategory(ctx, category)
	if err != nil {
		return explain(err)
	}
	if len(books) == 0 {
		printMessage(c, "No books in category %q.", category)
		return nil
	}
	return printResult(c, books)
}

func runBookCreate(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	var in domain.BookInput
	if err := applyBookFlags(c, &in); err != nil {
		return err
	}
	for _, name := range []string{"title", "author", "year", "category", "pages"} {
		if !c.IsSet(name) {
			return domain.ErrMissingArgument.WithDetails("--" + name + " is required")
		}
	}

	ctx, cancel := requestContext(c, rt)
	defer cancel()

	book, err := rt.Catalog.Create(ctx, in)
	if err != nil {
		return explain(err)
	}
	printMessage(c, "Created book %s.", book.Code)
	return printResult(c, book)
}

func runBookUpdate(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	code, err := codeArg(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, rt)
	defer cancel()

	current, err := rt.Catalog.Get(ctx, code)
	if err != nil {
		return explain(err)
	}
	in := current.Input()
	if err := applyBookFlags(c, &in); err != nil {
		return err
	}

	book, err := rt.Catalog.Update(ctx, code, in)
	if err != nil {
		return explain(err)
	}
	printMessage(c, "Updated book %s.", book.Code)
	return printResult(c, book)
}

func runBookDelete(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	code, err := codeArg(c)
	if err != nil {
		return err
	}

	if !c.Bool("force") {
		if !newLineReader(c).Confirm(fmt.Sprintf("Delete book '%s'?", code)) {
			printMessage(c, "Cancelled.")
			return nil
		}
	}

	ctx, cancel := requestContext(c, rt)
	defer cancel()

	if err := rt.Catalog.Delete(ctx, code); err != nil {
		return explain(err)
	}
	printMessage(c, "Deleted book %s.", code)
	return nil
}

// codeArg returns the single CODE argument. Flags following CODE are
// applied to c before it returns.
func codeArg(c *cli.Context) (string, error) {
	args, err := positionalArgs(c)
	if err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", domain.ErrMissingArgument.WithDetails("expected exactly one book CODE")
	}
	code := strings.TrimSpace(args[0])
	if err := domain.ValidateCode(code); err != nil {
		return "", err
	}
	return code, nil
}

// positionalArgs splits c.Args() into positionals and trailing flags.
// urfave/cli stops parsing flags at the first positional, so
// "book update L1 --pages 736" arrives as three arguments; the flags are
// parsed here against the command's flags (and the global ones) and set
// on c.
func positionalArgs(c *cli.Context) ([]string, error) {
	set := flag.NewFlagSet(c.Command.Name, flag.ContinueOnError)
	set.SetOutput(io.Discard)
	flags := append([]cli.Flag{}, c.Command.Flags...)
	flags = append(flags, c.App.Flags...)
	for _, f := range flags {
		if defined(set, f) {
			continue
		}
		if err := f.Apply(set); err != nil {
			return nil, err
		}
	}

	var positional []string
	rest := c.Args().Slice()
	for len(rest) > 0 {
		if err := set.Parse(rest); err != nil {
			return nil, domain.ErrInvalidArgument.WithDetails(err.Error())
		}
		rest = set.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	// Aliases are separate entries in the flag set, so the value is
	// copied to every name of the flag.
	var setErr error
	set.Visit(func(f *flag.Flag) {
		names := []string{f.Name}
		if cf := flagNamed(flags, f.Name); cf != nil {
			names = cf.Names()
		}
		for _, name := range names {
			if err := c.Set(name, f.Value.String()); err != nil && setErr == nil {
				setErr = domain.ErrInvalidArgument.WithDetails(err.Error())
			}
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	return positional, nil
}

func defined(set *flag.FlagSet, f cli.Flag) bool {
	for _, name := range f.Names() {
		if set.Lookup(name) != nil {
			return true
		}
	}
	return false
}

func flagNamed(flags []cli.Flag, name string) cli.Flag {
	for _, f := range flags {
		for _, n := range f.Names() {
			if n == name {
				return f
			}
		}
	}
	return nil
}

// applyBookFlags overlays the field flags that were set onto in.
func applyBookFlags(c *cli.Context, in *domain.BookInput) error {
	if c.IsSet("title") {
		in.Title = c.String("title")
	}
	if c.IsSet("author") {
		in.Author = c.String("author")
	}
	if c.IsSet("category") {
		in.Category = c.String("category")
	}
	if c.IsSet("year") {
		n, err := parseNumber("year", c.String("year"))
		if err != nil {
			return err
		}
		in.Year = n
	}
	if c.IsSet("pages") {
		n, err := parseNumber("pages", c.String("pages"))
		if err != nil {
			return err
		}
		in.PageCount = n
	}
	return nil
}

func parseNumber(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("--%s must be a whole number, got %q", name, value))
	}
	return n, nil
}
