package input

// Input is what the command line asks to fetch.
type Input struct {
	URL      *URL
	Raw      string
	FellBack bool // URL is FallbackURL because Raw could not be parsed
}
