package session

import (
	"log"

	"github.com/milk9111/jumpy/prefabs"
)

// WatchPrefabs enables hot reload from dir. Changes are applied at the start
// of the next Step.
func (s *Session) WatchPrefabs(dir string) error {
	if s.watcher != nil {
		return nil
	}
	w, err := prefabs.NewWatcher(dir)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

func (s *Session) pollReloads() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.Reload(name)
		case err, ok := <-s.watcher.Errors:
			if ok {
				log.Printf("Session: watch error: %v", err)
			}
		default:
			return
		}
	}
}

// Reload applies a changed prefab file. Shop prices, names and scripts take
// effect immediately. Entity prefabs are read on every spawn, so they need no
// action; world.yaml is only read when a session is created.
func (s *Session) Reload(name string) {
	switch {
	case name == "shop.yaml":
		spec, err := prefabs.LoadShopSpec()
		if err != nil {
			log.Printf("Session: reload %s: %v", name, err)
			return
		}
		n := s.catalogue.Apply(spec)
		log.Printf("Session: reloaded %s, %d item(s) changed", name, n)
	case prefabs.IsScriptFile(name):
		n, err := s.catalogue.ReloadScript(name)
		if err != nil {
			log.Printf("Session: reload %s: %v", name, err)
			return
		}
		log.Printf("Session: reloaded %s for %d item(s)", name, n)
	case name == "world.yaml":
		log.Printf("Session: %s changed, applies to the next session", name)
	default:
		log.Printf("Session: %s changed", name)
	}
}
