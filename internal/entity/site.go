package entity

import "time"

// Site is one entry of the sitemap.
type Site struct {
	Source      string `json:"source" yaml:"source"`               // Path of the site sources relative to the project root
	BasePath    string `json:"basePath" yaml:"basePath"`           // Folder under the output root the site is published to, leading slash optional
	Application bool   `json:"angularApp" yaml:"angularApp"`       // Build the site before copying
	Production  bool   `json:"productionEnv" yaml:"productionEnv"` // Build in production mode, used only for applications
}

// ResolvedSite holds the paths computed for a single site right before it is prepared.
type ResolvedSite struct {
	BasePath    string // BasePath without the leading slash
	Source      string // Absolute path to the site sources
	Destination string // Output root joined with the original BasePath
}

type SiteReport struct {
	Source      string
	BasePath    string
	Destination string
	Application bool
	Duration    time.Duration
}
