package watcher

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/robclancy/middleman/internal/tlogger"
)

// StartWatcher watches folder recursively and emits the path of every
// created, written, renamed or removed file. Newly created directories are
// added to the watch as they appear.
func StartWatcher(folder string) <-chan string {
	wch, err := fsnotify.NewWatcher()
	if err != nil {
		panic(err)
	}

	outCh := make(chan string, 100)

	go func() {
		for {
			select {
			case event, ok := <-wch.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					tlogger.Debug("msg", "Detected change", "path", event.Name, "op", event.Op.String())
					if event.Op&fsnotify.Create != 0 {
						if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
							wch.Add(event.Name)
						}
					}
					outCh <- event.Name
				}
			case err, ok := <-wch.Errors:
				if !ok {
					return
				}
				tlogger.Warn("msg", "Watcher error", "err", err)
			}
		}
	}()

	filepath.Walk(folder, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if fi.IsDir() {
			return wch.Add(path)
		}
		return nil
	})

	return outCh
}
