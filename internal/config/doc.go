// Package config loads glide settings.
//
// Settings come from three layers, highest priority last:
//
//	1. Built-in defaults       (Default)
//	2. Config file             (TOML, or YAML for .yaml/.yml)
//	3. Environment variables   (GLIDE_SECTION_SETTING_NAME)
//
// A file looks like:
//
//	[scroll]
//	lerp = 0.1
//	easing = "out-expo"      # or "lua: 1 - (1 - t) ^ 4"
//	smoothWheel = true
//
//	[snap]
//	type = "mandatory"
//	debounce = "500ms"
//
//	[log]
//	level = "info"
//	file = "/tmp/glide.log"
//
// Durations are strings accepted by time.ParseDuration, or numbers of
// seconds. Load validates the merged result; ScrollOptions and SnapOptions
// convert it for the engine.
package config
