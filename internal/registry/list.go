package registry

// Entry is the listing view of a registered plugin.
type Entry struct {
	Name      string `json:"name"`
	Repo      string `json:"repo"`
	Directory string `json:"directory"`
	Autoload  bool   `json:"autoload"`
	Installed bool   `json:"installed"`
}

// List describes every registered plugin in registration order. Installed is
// checked against the filesystem on each call.
func (r *Registry) List() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		cfg := r.plugins[name]
		entries = append(entries, Entry{
			Name:      cfg.Name,
			Repo:      cfg.Repo,
			Directory: cfg.Directory,
			Autoload:  cfg.Autoload,
			Installed: r.exists(cfg.Directory),
		})
	}
	return entries
}
