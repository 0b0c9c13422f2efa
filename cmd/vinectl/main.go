// vinectl - offline tooling for the vine-riddle puzzle
//
// Usage:
//
//	vinectl layout <word>                           Print glyph geometry as JSON
//	vinectl svg <word>                              Print the lexicon swatch SVG
//	vinectl png [-size N] [-caption] -out F <word>  Rasterize a glyph to PNG
//	vinectl vine <clue-id|final>                    Print a vine sentence SVG
//	vinectl check [-mode M] <glyph> <guess>         Run the verifier on one guess
//	vinectl export -db F -out F                     Dump guess records to XLSX
//	vinectl token [-ttl D]                          Mint an admin bearer token
//	vinectl hash-password <password>                Print a bcrypt admin hash
//
// The puzzle is read from PUZZLE_FILE when set, otherwise the bundled one.
// VISITOR_SECRET must match the server's for tokens to verify.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/vine-riddle/assets"
	"github.com/robalobadob/vine-riddle/internal/export"
	"github.com/robalobadob/vine-riddle/internal/glyph"
	"github.com/robalobadob/vine-riddle/internal/httpserver"
	"github.com/robalobadob/vine-riddle/internal/match"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/store"
	"github.com/robalobadob/vine-riddle/internal/verifier"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	_ = godotenv.Load()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "layout":
		cmdLayout(args)
	case "svg":
		cmdSVG(args)
	case "png":
		cmdPNG(args)
	case "vine":
		cmdVine(args)
	case "check":
		cmdCheck(args)
	case "export":
		cmdExport(args)
	case "token":
		cmdToken(args)
	case "hash-password":
		cmdHashPassword(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "vinectl: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: vinectl <command> [args]

Commands:
  layout <word>                 Print glyph geometry as JSON
  svg <word>                    Print the lexicon swatch SVG
  png -out F <word>             Rasterize a glyph to PNG (-size, -caption)
  vine <clue-id|final>          Print a vine sentence SVG
  check <glyph> <guess>         Run the verifier on one guess (-mode)
  export -db F -out F           Dump guess records to XLSX
  token                         Mint an admin bearer token (-ttl)
  hash-password <password>      Print a bcrypt admin hash`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vinectl: "+format+"\n", args...)
	os.Exit(1)
}

func loadPuzzle() *puzzle.Puzzle {
	p, err := puzzle.FromEnv()
	if err != nil {
		fatal("load puzzle: %v", err)
	}
	return p
}

// oneArg parses fs and returns its single positional argument.
func oneArg(fs *flag.FlagSet, args []string, what string) string {
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fatal("%s: expected %s", fs.Name(), what)
	}
	return fs.Arg(0)
}

func cmdLayout(args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	word := oneArg(fs, args, "<word>")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(loadPuzzle().Tables().Layout(word)); err != nil {
		fatal("encode: %v", err)
	}
}

func cmdSVG(args []string) {
	fs := flag.NewFlagSet("svg", flag.ExitOnError)
	word := oneArg(fs, args, "<word>")
	fmt.Println(glyph.Swatch(word, loadPuzzle().Tables()))
}

func cmdPNG(args []string) {
	fs := flag.NewFlagSet("png", flag.ExitOnError)
	size := fs.Int("size", 256, "image edge in pixels")
	caption := fs.Bool("caption", false, "draw the word under the glyph")
	out := fs.String("out", "", "output file (required)")
	word := oneArg(fs, args, "<word>")
	if *out == "" {
		fatal("png: -out is required")
	}

	opts := glyph.RasterOptions{Size: *size}
	if *caption {
		opts.Caption = word
	}
	img, err := glyph.Rasterize(loadPuzzle().Tables().Layout(word), opts)
	if err != nil {
		fatal("rasterize: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		fatal("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fatal("encode png: %v", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%dx%d)\n", *out, *size, *size)
}

func cmdVine(args []string) {
	fs := flag.NewFlagSet("vine", flag.ExitOnError)
	id := oneArg(fs, args, "<clue-id|final>")
	p := loadPuzzle()
	if id == "final" {
		fmt.Println(glyph.VineSentence(p.Final, "Final vine sentence", p.Tables()))
		return
	}
	c, ok := p.Clue(id)
	if !ok {
		fatal("vine: unknown clue %q", id)
	}
	fmt.Println(glyph.VineSentence(c.Words, "Vine sentence for clue "+c.ID, p.Tables()))
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	modeFlag := fs.String("mode", "", "strict or fuzzy (default: puzzle mode)")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fatal("check: expected <glyph> <guess>")
	}

	p := loadPuzzle()
	mode := p.Mode
	if *modeFlag != "" {
		m, err := match.ParseMode(*modeFlag)
		if err != nil {
			fatal("check: %v", err)
		}
		mode = m
	}
	res, err := verifier.New(p, match.New(mode, p.Aliases)).Check(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fatal("check: %v", err)
	}
	fmt.Printf("%s\t%s\t%s\n", res.Glyph, res.Outcome, res.Label)
	if !res.Accepted() {
		os.Exit(2)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", os.Getenv("DB_PATH"), "SQLite database path")
	out := fs.String("out", "vine-guesses.xlsx", "output workbook")
	_ = fs.Parse(args)
	if *dbPath == "" {
		fatal("export: -db or DB_PATH is required")
	}

	st, err := store.OpenSQLite(*dbPath, assets.Migrations())
	if err != nil {
		fatal("open %s: %v", *dbPath, err)
	}
	defer st.Close()

	ctx := context.Background()
	records, err := st.All(ctx)
	if err != nil {
		fatal("read records: %v", err)
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		fatal("read stats: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		fatal("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := export.WriteWorkbook(f, records, stats); err != nil {
		fatal("write workbook: %v", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d records, %d glyphs)\n", *out, len(records), len(stats))
}

func cmdToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	ttl := fs.Duration("ttl", 12*time.Hour, "token lifetime")
	_ = fs.Parse(args)

	secret := os.Getenv("VISITOR_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	tok, err := httpserver.SignAdmin([]byte(secret), *ttl)
	if err != nil {
		fatal("sign: %v", err)
	}
	fmt.Println(tok)
}

func cmdHashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	pw := oneArg(fs, args, "<password>")
	if len(pw) < 8 {
		fatal("hash-password: password must be at least 8 chars")
	}
	h, err := httpserver.HashPassword(pw)
	if err != nil {
		fatal("hash: %v", err)
	}
	fmt.Println(h)
}
