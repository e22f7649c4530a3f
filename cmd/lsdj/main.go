package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/lsdj"
	"github.com/bodgit/lsdj/metadata"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB    = "lsdj.db"
	defaultTitle = "SONGNAME"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func readSave(file string, logger *log.Logger) (*lsdj.Save, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := lsdj.Read(f)
	if err != nil {
		return nil, err
	}

	if !s.Metadata.CheckInit() {
		logger.Printf("\"%s\" fails the SRAM init check\n", file)
	}

	return s, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func output(c *cli.Context) (io.WriteCloser, error) {
	if file := c.String("output"); file != "" {
		return os.Create(file)
	}
	return nopCloser{os.Stdout}, nil
}

func write(c *cli.Context, b []byte) error {
	w, err := output(c)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writeSave(c *cli.Context, s *lsdj.Save) error {
	b, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return write(c, b)
}

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "write to `FILE` instead of stdout",
}

var songFlag = &cli.IntFlag{
	Name:     "song",
	Aliases:  []string{"s"},
	Usage:    "song `INDEX`",
	Required: true,
}

func main() {
	app := cli.NewApp()

	app.Name = "lsdj"
	app.Usage = "LittleSoundDj save file management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"LSDJ_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to song library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "list",
			Usage:     "List indices, titles, and versions of songs in a save file",
			ArgsUsage: "SAVEFILE",
			Flags:     []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := readSave(c.Args().First(), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var b []byte
				for _, song := range s.Songs() {
					b = append(b, fmt.Sprintf("%02X: %s.%X\n", song.Index, song.Title, song.Version)...)
				}

				if err := write(c, b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export the compressed blocks of a song",
			ArgsUsage: "SAVEFILE",
			Flags:     []cli.Flag{songFlag, outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := readSave(c.Args().First(), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := write(c, s.ExportSong(c.Int("song"))); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export-sram",
			Usage:     "Export the working song, compressed",
			ArgsUsage: "SAVEFILE",
			Flags:     []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := readSave(c.Args().First(), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				blocks, err := s.CompressSRAM()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := write(c, blocks.Bytes()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import compressed song blocks into a save file",
			ArgsUsage: "SONGFILE SAVEFILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "title",
					Aliases: []string{"t"},
					Value:   defaultTitle,
					Usage:   "song `TITLE`, at most eight of A-Z, 0-9, space and x (lightning bolt)",
				},
				outputFlag,
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				title, err := metadata.ParseTitle(c.String("title"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				b, err := lsdj.ReadBlocks(f)
				f.Close()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				s, err := readSave(c.Args().Get(1), logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				song, err := s.ImportSong(b, title)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Printf("Imported \"%s\" as song %02X\n", title, song)

				if err := writeSave(c, s); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "load",
			Usage:     "Decompress a song into working memory",
			ArgsUsage: "SAVEFILE",
			Flags:     []cli.Flag{songFlag, outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := readSave(c.Args().First(), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := s.LoadSong(c.Int("song")); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeSave(c, s); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem for save files and add their songs to the library",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := lsdj.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer l.Close()

				if err := l.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "library",
			Usage: "List songs in the library",
			Flags: []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				l, err := lsdj.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer l.Close()

				songs, err := l.Songs()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var b []byte
				for _, s := range songs {
					b = append(b, fmt.Sprintf("%d: %s.%X (%d blocks) %s\n", s.ID, s.Title, s.Version, s.Blocks, s.SHA1)...)
				}

				if err := write(c, b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "fetch",
			Usage:     "Import a song from the library into a save file",
			ArgsUsage: "ID SAVEFILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "title",
					Aliases: []string{"t"},
					Usage:   "override the stored song `TITLE`",
				},
				outputFlag,
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := strconv.ParseInt(c.Args().First(), 10, 64)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				logger := newLogger(c)

				l, err := lsdj.New(c.String("db"), logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer l.Close()

				s, err := readSave(c.Args().Get(1), logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if _, err := l.Fetch(s, id, c.String("title")); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeSave(c, s); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
