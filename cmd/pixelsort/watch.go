package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/pixelsort"
	"github.com/gogpu/pixelsort/document"
	"github.com/gogpu/pixelsort/preview"
)

type watchCmd struct {
	flags  sortFlags
	output string
	tick   time.Duration
	alpha  bool
}

func newWatchCmd() *cobra.Command {
	c := &watchCmd{}
	cmd := &cobra.Command{
		Use:   "watch [flags] IMAGE",
		Short: "Re-sort an image whenever it or its preset changes",
		Long: "Watch IMAGE, the preset file and the mask, and write a fresh result to\n" +
			"--output after every change. Changes arriving while a sort is running\n" +
			"are coalesced into one follow-up sort.",
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	c.flags.register(cmd.Flags())
	fs := cmd.Flags()
	fs.StringVarP(&c.output, "output", "o", "", "output file (required)")
	fs.DurationVar(&c.tick, "poll", 100*time.Millisecond, "how often pending changes are checked")
	fs.BoolVar(&c.alpha, "alpha", false, "keep the alpha channel instead of flattening to RGB")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (c *watchCmd) run(cmd *cobra.Command, args []string) error {
	input := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch directories rather than files so editors that save by
	// replacing the file are still noticed.
	watched := map[string]bool{}
	for _, path := range c.watchedFiles(input) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	worker := preview.New(preview.WithSorter(c.flags.sorter()))
	defer worker.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.submitLoop(ctx, cmd, input, watcher, watched, worker)
	})
	g.Go(func() error {
		return c.writeLoop(ctx, cmd, worker)
	})
	return g.Wait()
}

func (c *watchCmd) watchedFiles(input string) []string {
	files := []string{input}
	if c.flags.preset != "" {
		if _, err := os.Stat(c.flags.preset); err == nil {
			files = append(files, c.flags.preset)
		}
	}
	if c.flags.mask != "" {
		files = append(files, c.flags.mask)
	}
	return files
}

// submitLoop marks the state dirty on every relevant file event and, on
// each tick, submits the latest state once the worker is idle.
func (c *watchCmd) submitLoop(ctx context.Context, cmd *cobra.Command, input string, watcher *fsnotify.Watcher, watched map[string]bool, worker *preview.Worker) error {
	log := pixelsort.Logger()
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug("watch: change", "file", ev.Name, "op", ev.Op.String())
				dirty = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch: watcher error", "err", err)

		case <-ticker.C:
			if !dirty || worker.Busy() {
				continue
			}
			req, err := c.request(cmd, input)
			if err != nil {
				// Files are often caught half-written; the next write
				// event retries.
				log.Warn("watch: cannot prepare sort", "err", err)
				dirty = false
				continue
			}
			if worker.Submit(req) {
				dirty = false
			}
		}
	}
}

func (c *watchCmd) writeLoop(ctx context.Context, cmd *cobra.Command, worker *preview.Worker) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-worker.Results():
			if !ok {
				return nil
			}
			if res.Err != nil {
				continue
			}
			if err := pixelsort.SaveImage(res.Image, c.output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d -> %s\n", res.Seq, c.output)
		}
	}
}

// request reads the current input, preset and mask from disk.
func (c *watchCmd) request(cmd *cobra.Command, input string) (preview.Request, error) {
	var opts []document.Option
	if c.alpha {
		opts = append(opts, document.WithAlpha())
	}
	doc := document.New(opts...)
	if err := doc.Load(input); err != nil {
		return preview.Request{}, err
	}
	p, err := c.flags.params(cmd)
	if err != nil {
		return preview.Request{}, err
	}
	region, err := c.flags.parseRegion()
	if err != nil {
		return preview.Request{}, err
	}
	mask, err := c.flags.loadMask()
	if err != nil {
		return preview.Request{}, err
	}
	return preview.Request{Image: doc.Image(), Params: p, Region: region, Mask: mask}, nil
}
