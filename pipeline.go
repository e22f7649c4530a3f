package lsdj

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/lsdj/metadata"
)

const saveExt = ".sav"

func (l *LSDj) findSaves(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), saveExt) {
				return nil
			}

			// Anything else can't be a save
			if info.Size() != SaveSize {
				l.logger.Printf("Skipping \"%s\", wrong size\n", file)
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (l *LSDj) addSave(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return err
	}

	if !s.Metadata.CheckInit() {
		l.logger.Printf("\"%s\" fails the SRAM init check\n", file)
	}

	for song := 0; song < metadata.SongSlots; song++ {
		if s.Metadata.SizeOf(song) == 0 {
			continue
		}

		title := s.Metadata.Titles[song].Strip()
		id, err := l.lib.AddSong(title, s.Metadata.Versions[song], s.ExportSong(song))
		if err != nil {
			return err
		}
		if err := l.lib.addSource(id, file, song); err != nil {
			return err
		}

		l.logger.Printf("Added \"%s\" from \"%s\" song %02X\n", title, file, song)
	}

	return nil
}

func (l *LSDj) saveWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			// Each worker reads its own copy of a save
			if err := l.addSave(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path for save files and adds every song found to the library.
func (l *LSDj) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	saves, errc, err := l.findSaves(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := l.saveWorker(ctx, saves)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
