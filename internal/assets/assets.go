package assets

var builtinLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return builtinLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in report template by name.
func LoadTemplate(name string) (string, error) {
	return builtinLoader.LoadTemplate(name)
}

// StyleNames returns the names of the built-in styles, sorted.
func StyleNames() []string {
	return builtinLoader.Styles()
}
