// Package watcher reloads translations when override files change on disk.
//
// A Watcher registers a directory tree with fsnotify, filters events by file
// extension and calls its change function once the tree has been quiet for the
// debounce period:
//
//	w, err := watcher.New(baseDir, engine.Reload, watcher.WithExtensions("lang", "json"))
//	if err != nil {
//		return err
//	}
//	go w.Run(ctx)
//
// Directories created after Run starts are picked up automatically.
package watcher
