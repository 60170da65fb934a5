// Command starcalc is the batch driver for the difficulty/performance
// pipeline: point it at a song directory and it walks every .osu file,
// computes star rating (and, with a replay, pp), and prints a results
// table. It can also watch a directory and recompute each .osu file that is
// written or created, or resolve a beatmap ID through the osu! API.
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/karrick/godirwalk"
	"github.com/olekukonko/tablewriter"
	"github.com/tklauser/numcpus"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/calc"
	"github.com/wieku/starcalc/internal/beatmapio"
	"github.com/wieku/starcalc/internal/cache"
	"github.com/wieku/starcalc/internal/osuapi"
	"github.com/wieku/starcalc/internal/replay"
)

func main() {
	dir := flag.String("dir", ".", "directory to scan for .osu files")
	modsFlag := flag.String("mods", "", "mod acronyms to apply, e.g. HDDT")
	watch := flag.Bool("watch", false, "keep running and recompute on file changes")
	replayPath := flag.String("replay", "", "compute pp from a .osr replay instead of star rating only")
	cachePath := flag.String("cache", "", "SQLite cache file (disabled if empty)")
	apiKey := flag.String("osuapi-key", "", "osu! API key, enables -beatmap-id lookups")
	beatmapID := flag.Int("beatmap-id", 0, "resolve and report a single beatmap ID via the osu! API")
	workers := flag.Int("workers", 0, "worker count (0 = autodetect online CPUs)")
	flag.Parse()

	mods := difficulty.ParseMods(*modsFlag)

	if *apiKey != "" && *beatmapID != 0 {
		if err := lookupBeatmap(*apiKey, *beatmapID); err != nil {
			fmt.Fprintln(os.Stderr, "osuapi lookup failed:", err)
			os.Exit(1)
		}

		return
	}

	if *replayPath != "" {
		if err := computeFromReplay(*dir, *replayPath, mods); err != nil {
			fmt.Fprintln(os.Stderr, "replay pp failed:", err)
			os.Exit(1)
		}

		return
	}

	var store *cache.Store

	if *cachePath != "" {
		var err error

		store, err = cache.Open(*cachePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cache open failed:", err)
			os.Exit(1)
		}

		defer store.Close()
	}

	n := *workers
	if n <= 0 {
		n = onlineCPUs()
	}

	if err := runBatch(*dir, mods, n, store); err != nil {
		fmt.Fprintln(os.Stderr, "batch run failed:", err)
		os.Exit(1)
	}

	if *watch {
		if err := watchDir(*dir, mods, n, store); err != nil {
			fmt.Fprintln(os.Stderr, "watch failed:", err)
			os.Exit(1)
		}
	}
}

func onlineCPUs() int {
	n, err := numcpus.GetOnline()
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}

	return n
}

type result struct {
	path  string
	stars float64
	combo int
	mode  string
	err   error
}

func findOsuFiles(dir string) ([]string, error) {
	var paths []string

	err := godirwalk.Walk(dir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			if strings.EqualFold(filepath.Ext(osPathname), ".osu") {
				paths = append(paths, osPathname)
			}

			return nil
		},
	})

	return paths, err
}

func runBatch(dir string, mods difficulty.Mods, workers int, store *cache.Store) error {
	paths, err := findOsuFiles(dir)
	if err != nil {
		return err
	}

	results := computeAll(paths, mods, workers, store)
	printResults(results)

	return nil
}

func computeAll(paths []string, mods difficulty.Mods, workers int, store *cache.Store) []result {
	jobs := make(chan string, len(paths))
	results := make([]result, len(paths))

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for path := range jobs {
				results[indexOf(paths, path)] = computeOne(path, mods, store)
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}

	close(jobs)
	wg.Wait()

	return results
}

// indexOf is O(n) but batch sizes here are song counts, not a hot loop;
// a map keyed by path would add allocation for no measurable gain.
func indexOf(paths []string, path string) int {
	for i, p := range paths {
		if p == path {
			return i
		}
	}

	return -1
}

func computeOne(path string, mods difficulty.Mods, store *cache.Store) result {
	f, err := os.Open(path)
	if err != nil {
		return result{path: path, err: err}
	}
	defer f.Close()

	bm, err := beatmapio.Decode(f)
	if err != nil {
		return result{path: path, err: err}
	}

	checksum := ""
	if store != nil {
		checksum = checksumOf(path)

		if e, ok, err := store.Get(checksum, bm.Mode, mods); err == nil && ok {
			return result{path: path, stars: e.Stars, combo: e.MaxCombo, mode: bm.Mode.String()}
		}
	}

	attrs, err := calc.Difficulty(bm, mods)
	if err != nil {
		return result{path: path, err: err}
	}

	if store != nil {
		_ = store.Put(checksum, bm.Mode, mods, cache.Entry{Stars: attrs.Stars(), MaxCombo: maxComboOf(attrs)})
	}

	return result{path: path, stars: attrs.Stars(), combo: maxComboOf(attrs), mode: bm.Mode.String()}
}

func maxComboOf(a calc.Attributes) int {
	switch a.Mode {
	case beatmap.ModeTaiko:
		return a.Taiko.MaxCombo
	case beatmap.ModeCatch:
		return a.Catch.MaxCombo
	case beatmap.ModeMania:
		return a.Keys.MaxCombo
	default:
		return a.Osu.MaxCombo
	}
}

func checksumOf(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%x", md5.Sum(data))
}

func printResults(results []result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Beatmap", "Mode", "Stars", "Max Combo"})

	for _, r := range results {
		if r.err != nil {
			table.Append([]string{filepath.Base(r.path), "-", "error: " + r.err.Error(), "-"})
			continue
		}

		table.Append([]string{
			filepath.Base(r.path),
			r.mode,
			humanize.FormatFloat("#,###.##", r.stars),
			humanize.Comma(int64(r.combo)),
		})
	}

	table.Render()
}

func computeFromReplay(dir, replayPath string, mods difficulty.Mods) error {
	score, err := replay.Load(replayPath)
	if err != nil {
		return err
	}

	paths, err := findOsuFiles(dir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if checksumOf(path) != score.BeatmapChecksum {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			continue
		}

		bm, err := beatmapio.Decode(f)
		f.Close()

		if err != nil {
			continue
		}

		attrs, err := calc.Difficulty(bm, score.Mods)
		if err != nil {
			continue
		}

		perf := calc.PerformanceFor(attrs, score.State, score.Mods)

		fmt.Printf("%s: %.2f* -> %.2fpp\n", filepath.Base(path), attrs.Stars(), perf.PP())

		return nil
	}

	return fmt.Errorf("no matching beatmap found in %s for replay %s", dir, replayPath)
}

func lookupBeatmap(apiKey string, id int) error {
	info, err := osuapi.New(apiKey).ByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("#%d %s - %s [%s] (checksum %s)\n", info.BeatmapID, info.Artist, info.Title, info.Version, info.Checksum)

	return nil
}

func watchDir(dir string, mods difficulty.Mods, workers int, store *cache.Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	fmt.Println("watching", dir, "for changes (ctrl-c to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !strings.EqualFold(filepath.Ext(event.Name), ".osu") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			r := computeOne(event.Name, mods, store)
			printResults([]result{r})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}
