package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anvilgo/anvil/errs"
)

// ParseFilename extracts the region's (x, z) coordinates from a filename of
// the form "r.<x>.<z>.mca", the vanilla-compatible naming convention. Both
// components are signed decimal integers.
func ParseFilename(name string) (x, z int, err error) {
	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] != "mca" {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrInvalidFilename, name)
	}

	x, errX := strconv.Atoi(parts[1])
	z, errZ := strconv.Atoi(parts[2])
	if errX != nil || errZ != nil {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrInvalidFilename, name)
	}

	return x, z, nil
}

// Filename builds the canonical "r.<x>.<z>.mca" filename for a region at
// coordinates (x, z).
func Filename(x, z int) string {
	return fmt.Sprintf("r.%d.%d.mca", x, z)
}
