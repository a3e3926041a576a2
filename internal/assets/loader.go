package assets

// Built-in style names.
const (
	StyleExpand      = "expand"
	StyleExpandLight = "expand-light"
)

// StyleLoader loads CSS styles by name (without the .css extension).
type StyleLoader interface {
	// LoadStyle returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
