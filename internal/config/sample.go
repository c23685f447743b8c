package config

// SampleConfig returns a fully commented configuration file with every
// option at its default.
func SampleConfig() string {
	return `# ChartShelf configuration
#
# Files are merged in this order, later ones winning:
#   /etc/chartshelf/config.yaml
#   ~/.config/chartshelf/config.yaml
#   ./.chartshelf.yaml
# CHARTSHELF_<SECTION>_<KEY> environment variables override all of them,
# e.g. CHARTSHELF_SESSION_BACKEND=svg.

version: "1.0"

session:
  # Encoding rows a new chart starts with.
  initial_rows: 3
  # Show the chart after every change: auto (when stdout is a terminal),
  # always or never.
  interactive: auto
  # Renderer: vegalite, svg or term.
  backend: vegalite
  # How long watch waits for more changes before re-rendering.
  debounce: 200ms

render:
  # 0 lets the renderer pick.
  width: 0
  height: 0
  title: ""

output:
  # Format of "render --format" and "config show": json, yaml, text or markdown.
  default_format: text
  # auto, always or never.
  color_mode: auto
  verbose: false
  # default, high-contrast or minimal.
  theme: default

data:
  # Sheet read from .xlsx files; the first one when empty.
  sheet: ""
  # Format of .log files: auto, json, logfmt or text.
  log_format: auto
  # Stop after this many rows; 0 reads everything.
  max_rows: 0

shell:
  history_file: ~/.cache/chartshelf/history
  prompt: "chart> "
`
}

// MinimalSampleConfig returns a short configuration with the options people
// change most.
func MinimalSampleConfig() string {
	return `version: "1.0"

session:
  initial_rows: 3
  backend: vegalite

output:
  default_format: text
  theme: default
`
}
