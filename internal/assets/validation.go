package assets

import (
	"fmt"
	"regexp"
)

// maxNameLength bounds asset names, which become file names.
const maxNameLength = 64

// assetName allows letters, digits, '-' and '_', starting with a letter or digit.
var assetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name can be used as a style or template file
// stem. Anything that could select another directory or extension is rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), maxNameLength)
	}
	if !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidAssetName, name)
	}
	return nil
}
