package config

// File is the root of the YAML configuration file.
//
// Example:
//
//	defaults:
//	  headers:
//	    Accept-Language: "en-US"
//	sites:
//	  app.example.com:
//	    cookie: "session=abc123"
//	    depth: 4
//	    headers:
//	      Authorization: "Bearer token"
type File struct {
	// Defaults applies to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults"`

	// Sites maps a hostname to its site-specific settings.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteConfig holds per-site crawl settings. Zero values mean "inherit".
type SiteConfig struct {
	// Headers are extra request headers for this site.
	Headers map[string]string `yaml:"headers"`

	// Cookie is sent as the Cookie header, shorthand for authenticated
	// crawls.
	Cookie string `yaml:"cookie"`

	// Depth overrides the global crawl depth for this site when positive.
	Depth int `yaml:"depth"`
}

// SiteFor returns the merged settings for the given hostname: defaults
// overlaid with the site's own entry, if any.
func (f *File) SiteFor(host string) SiteConfig {
	if f == nil {
		return SiteConfig{}
	}

	merged := f.Defaults
	site, ok := f.Sites[host]
	if !ok {
		return merged
	}

	if site.Cookie != "" {
		merged.Cookie = site.Cookie
	}
	if site.Depth > 0 {
		merged.Depth = site.Depth
	}
	if len(site.Headers) > 0 {
		if merged.Headers == nil {
			merged.Headers = make(map[string]string, len(site.Headers))
		} else {
			// Copy so callers never mutate the shared defaults.
			copied := make(map[string]string, len(merged.Headers)+len(site.Headers))
			for k, v := range merged.Headers {
				copied[k] = v
			}
			merged.Headers = copied
		}
		for k, v := range site.Headers {
			merged.Headers[k] = v
		}
	}
	return merged
}
